// Package osint derives search links and handle guesses from a student's
// name for awareness demos. It never contacts any of the services it links to.
package osint

import (
	"net/url"
	"strings"

	"github.com/stemsi/sherlock/internal/model"
)

// Disclaimer accompanies every generated report.
const Disclaimer = "Simulated OSINT report for educational use. No external lookups were performed; links and guesses are derived from the name only."

// MaxEmails caps the number of email guesses.
const MaxEmails = 8

var emailDomains = []string{"gmail.com", "outlook.com", "yahoo.com", "protonmail.com"}

// ParseName picks a first and last name from fullName. For names of three or
// more parts the last name is the right-most part (excluding the first) that
// does not also appear in fatherName.
func ParseName(fullName, fatherName string) (first, last string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	case 2:
		return parts[0], parts[1]
	}

	father := make(map[string]struct{})
	for _, p := range strings.Fields(fatherName) {
		father[strings.ToLower(p)] = struct{}{}
	}
	for i := len(parts) - 1; i > 0; i-- {
		if _, ok := father[strings.ToLower(parts[i])]; !ok {
			return parts[0], parts[i]
		}
	}
	return parts[0], parts[len(parts)-1]
}

// Build produces the report for req. The output depends only on the input.
func Build(req model.OsintRequest) model.OsintResult {
	first, last := ParseName(req.FullName, req.FatherName)
	usernames := Usernames(first, last)

	res := model.OsintResult{
		FirstName:     first,
		LastName:      last,
		SearchLinks:   SearchLinks(first, last, req.CollegeName),
		Usernames:     usernames,
		Emails:        Emails(first, last, req.EmailID),
		DomainLookups: make([]model.OsintLink, 0, 3),
		Disclaimer:    Disclaimer,
	}
	for _, u := range usernames[:min(3, len(usernames))] {
		res.DomainLookups = append(res.DomainLookups, model.OsintLink{
			Platform: "whois",
			URL:      "https://whois.domaintools.com/" + u + ".com",
		})
	}
	return res
}

// SearchLinks returns people-search URLs for the name on common platforms.
func SearchLinks(first, last, college string) []model.OsintLink {
	name := encodeComponent(strings.TrimSpace(first + " " + last))
	school := ""
	if college = strings.TrimSpace(college); college != "" {
		school = encodeComponent(college)
	}

	linkedin := "https://www.linkedin.com/search/results/people/?keywords=" + name
	scholar := "https://scholar.google.com/scholar?q=" + name
	if school != "" {
		linkedin += "&school=" + school
		scholar += "+" + school
	}

	return []model.OsintLink{
		{Platform: "google", URL: "https://www.google.com/search?q=" + name},
		{Platform: "linkedin", URL: linkedin},
		{Platform: "twitter", URL: "https://twitter.com/search?q=" + name + "&src=typed_query&f=user"},
		{Platform: "instagram", URL: "https://www.instagram.com/" + strings.ToLower(first) + strings.ToLower(last)},
		{Platform: "github", URL: "https://github.com/search?q=" + name + "&type=users"},
		{Platform: "facebook", URL: "https://www.facebook.com/search/people/?q=" + name},
		{Platform: "scholar", URL: scholar},
		{Platform: "images", URL: "https://www.google.com/search?q=" + name + "&tbm=isch"},
	}
}

// Usernames guesses common handle patterns. Both name parts are required.
func Usernames(first, last string) []string {
	if first == "" || last == "" {
		return []string{}
	}
	f, l := strings.ToLower(first), strings.ToLower(last)
	initial := string([]rune(f)[0])
	return []string{
		f + l,
		f + "." + l,
		f + "_" + l,
		initial + l,
		l + f,
		l + "." + f,
	}
}

// Emails guesses addresses on common providers, led by the student's own
// address when known. Without a last name only first@domain is guessed.
func Emails(first, last, own string) []string {
	out := make([]string, 0, MaxEmails)
	if own = strings.TrimSpace(own); own != "" {
		out = append(out, own)
	}
	if first == "" {
		return out
	}

	f, l := strings.ToLower(first), strings.ToLower(last)
	locals := []string{f}
	if l != "" {
		initial := string([]rune(f)[0])
		locals = []string{f + "." + l, f + l, initial + l, l + "." + f}
	}
	for _, local := range locals {
		for _, domain := range emailDomains {
			if len(out) == MaxEmails {
				return out
			}
			out = append(out, local+"@"+domain)
		}
	}
	return out
}

var componentUnescaper = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// encodeComponent escapes s for use inside a URL query value, leaving the
// same punctuation unescaped that browsers' encodeURIComponent does.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
