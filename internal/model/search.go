package model

// Selection tells the presentation layer how to show a result set.
type Selection string

const (
	SelectionNone     Selection = "none"
	SelectionSingle   Selection = "single"
	SelectionMultiple Selection = "multiple"
)

// SearchRequest is the query string accepted by the search endpoint.
type SearchRequest struct {
	Q       string `form:"q" binding:"max=200"`
	Surname string `form:"surname" binding:"max=100"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// ListRequest is the query string accepted by the listing endpoint. Only
// equality filters on identifiers are supported.
type ListRequest struct {
	EnrollmentNumber   string `form:"enrollmentNumber" binding:"max=64"`
	RegistrationNumber string `form:"registrationNumber" binding:"max=64"`
	Page               int    `form:"page" binding:"omitempty,min=1"`
	Limit              int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// Filters returns the non-empty equality filters keyed by canonical field.
func (r ListRequest) Filters() map[string]string {
	out := make(map[string]string, 2)
	if r.EnrollmentNumber != "" {
		out["enrollmentNumber"] = r.EnrollmentNumber
	}
	if r.RegistrationNumber != "" {
		out["registrationNumber"] = r.RegistrationNumber
	}
	return out
}

// ProfileRequest selects exactly one record by identifier.
type ProfileRequest struct {
	EnrollmentNumber   string `form:"enrollmentNumber" binding:"required_without=RegistrationNumber,max=64"`
	RegistrationNumber string `form:"registrationNumber" binding:"max=64"`
}

// Filters returns the non-empty identifier filters.
func (r ProfileRequest) Filters() map[string]string {
	return ListRequest{EnrollmentNumber: r.EnrollmentNumber, RegistrationNumber: r.RegistrationNumber}.Filters()
}

// SearchResult is one page of resolved records.
type SearchResult struct {
	Total     int       `json:"total"`
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`
	Data      []Student `json:"data"`
	Degraded  bool      `json:"degraded"`
	Source    Source    `json:"source,omitempty"`
	Message   string    `json:"message,omitempty"`
	Hint      string    `json:"hint,omitempty"`
	Selection Selection `json:"selection"`
}

// ProfileResult is a single resolved record with its display sections.
type ProfileResult struct {
	Student  Student          `json:"student"`
	Sections []ProfileSection `json:"sections"`
	Source   Source           `json:"source"`
	Degraded bool             `json:"degraded"`
}

// ProfileSection is one labelled block of the profile view.
type ProfileSection struct {
	Title  string         `json:"title"`
	Fields []ProfileField `json:"fields"`
}

// ProfileField is a single label/value pair.
type ProfileField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OsintRequest carries the name details used to derive search links.
type OsintRequest struct {
	FullName    string `json:"fullName" binding:"required,max=200"`
	FatherName  string `json:"fatherName" binding:"max=200"`
	EmailID     string `json:"emailId" binding:"omitempty,email"`
	CollegeName string `json:"collegeName" binding:"max=200"`
}

// OsintLink is one generated search link.
type OsintLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// OsintResult is the simulated OSINT awareness report. Nothing in it was
// fetched from the network.
type OsintResult struct {
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	SearchLinks   []OsintLink `json:"searchLinks"`
	Usernames     []string    `json:"usernames"`
	Emails        []string    `json:"emails"`
	DomainLookups []OsintLink `json:"domainLookups"`
	Disclaimer    string      `json:"disclaimer"`
}
