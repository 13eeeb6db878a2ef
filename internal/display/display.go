// Package display renders a student record into labelled profile sections.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/normalize"
)

// NotProvided is shown for an empty Aadhar number.
const NotProvided = "Not provided"

// Aadhar formats an Aadhar number as XXXX XXXX XXXX. Anything that is not
// exactly 12 digits after dropping a decimal tail and non-digits is shown
// with an invalid marker instead of being truncated.
func Aadhar(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NotProvided
	}
	whole, _, _ := strings.Cut(raw, ".")
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, whole)

	if len(digits) == 12 {
		return digits[0:4] + " " + digits[4:8] + " " + digits[8:12]
	}
	return digits + " (Invalid: must be 12 digits)"
}

// BuildProfile lays the record out in display sections. Empty values are
// dropped, and so are sections left without any value.
func BuildProfile(s *model.Student) []model.ProfileSection {
	raw := []model.ProfileSection{
		{Title: "Personal Information", Fields: []model.ProfileField{
			{Label: "Full Name", Value: s.FullName},
			{Label: "Enrollment Number", Value: s.EnrollmentNumber},
			{Label: "Registration Number", Value: s.RegistrationNumber},
			{Label: "Roll Number", Value: s.RollNumber},
			{Label: "ABC ID Number", Value: s.AbcIDNumber},
			{Label: "Date of Birth", Value: date(s.DateOfBirth)},
			{Label: "Birth Place", Value: s.BirthPlace},
			{Label: "Gender", Value: s.Gender},
			{Label: "Nationality", Value: s.Nationality},
			{Label: "Blood Group", Value: s.BloodGroup},
			{Label: "Marital Status", Value: s.MaritalStatus},
			{Label: "Religion", Value: s.Religion},
			{Label: "Category", Value: s.Category},
			{Label: "Sub Caste", Value: s.SubCaste},
			{Label: "Physically Handicapped", Value: s.PhysicallyHandicapped},
			{Label: "Aadhar Number", Value: Aadhar(s.AadharNumber)},
			{Label: "Passport Number", Value: s.PassportNumber},
			{Label: "Mother Tongue", Value: s.MotherTongue},
		}},
		{Title: "Contact Information", Fields: []model.ProfileField{
			{Label: "Mobile Number", Value: s.MobileNumber},
			{Label: "Mobile Number 2", Value: s.StudentMobileNo2},
			{Label: "Alternate Mobile", Value: s.AlternateMobileNumber},
			{Label: "Email ID", Value: s.EmailID},
			{Label: "Alternate Email", Value: s.AlternateEmailID},
		}},
		{Title: "Family Information", Fields: []model.ProfileField{
			{Label: "Father's Name", Value: normalize.ComposeName(s.FatherName, s.FatherMiddleName, s.FatherLastName)},
			{Label: "Mother's Name", Value: s.MotherName},
			{Label: "Father's Mobile", Value: s.FatherMobileNumber},
			{Label: "Mother's Mobile", Value: s.MotherMobileNumber},
			{Label: "Father's Qualification", Value: s.FatherQualification},
			{Label: "Father's Occupation", Value: s.FatherOccupation},
			{Label: "Father's Email", Value: s.FatherEmail},
			{Label: "Mother's Qualification", Value: s.MotherQualification},
			{Label: "Mother's Occupation", Value: s.MotherOccupation},
			{Label: "Mother's Email", Value: s.MotherEmail},
			{Label: "Annual Family Income", Value: s.AnnualFamilyIncome},
			{Label: "Social Category", Value: s.SocialCategory},
			{Label: "Both Parents Alive", Value: yesNo(s.AreBothParentsAlive)},
		}},
		{Title: "Guardian Information", Fields: []model.ProfileField{
			{Label: "Guardian Name", Value: s.GuardianName},
			{Label: "Guardian Contact", Value: s.GuardianContactNo},
			{Label: "Relation", Value: s.RelationWithGuardian},
			{Label: "Occupation", Value: s.GuardianOccupation},
			{Label: "Qualification", Value: s.GuardianQualification},
		}},
		{Title: "Academic Information", Fields: []model.ProfileField{
			{Label: "Admission Date", Value: date(s.AdmissionDate)},
			{Label: "Admission Type", Value: s.AdmissionType},
			{Label: "Admission Category", Value: s.AdmissionCategory},
			{Label: "Admission Through", Value: s.AdmissionThrough},
			{Label: "Program Level", Value: s.ProgramLevel},
			{Label: "College Name", Value: s.CollegeName},
			{Label: "Degree", Value: s.Degree},
			{Label: "Branch", Value: s.Branch},
			{Label: "Medium of Instruction", Value: s.Medium},
			{Label: "Admission Batch", Value: s.AdmissionBatch},
			{Label: "Current Year", Value: integer(s.CurrentYear)},
			{Label: "Semester", Value: integer(s.CurrentSemester)},
			{Label: "Academic Year", Value: s.AcademicYear},
			{Label: "Status", Value: s.Status},
			{Label: "Hosteller", Value: yesNo(s.IsHosteller)},
		}},
		education("10th Education", &s.Tenth),
		education("12th Education", &s.Twelfth),
		education("Diploma Information", &s.Diploma),
		{Title: "Entrance Exam", Fields: []model.ProfileField{
			{Label: "Exam Name", Value: s.Entrance.Name},
			{Label: "Seat Number", Value: s.Entrance.SeatNo},
			{Label: "Year of Exam", Value: s.Entrance.Year},
			{Label: "Percentile", Value: number(s.Entrance.Percentile)},
			{Label: "Rank", Value: s.Entrance.Rank},
		}},
		address("Permanent Address", &s.PermanentAddress),
		address("Local Address", &s.LocalAddress),
	}

	out := make([]model.ProfileSection, 0, len(raw))
	for _, sec := range raw {
		kept := sec.Fields[:0]
		for _, f := range sec.Fields {
			if f.Value != "" {
				kept = append(kept, f)
			}
		}
		if len(kept) > 0 {
			out = append(out, model.ProfileSection{Title: sec.Title, Fields: kept})
		}
	}
	return out
}

func education(title string, b *model.EducationBlock) model.ProfileSection {
	return model.ProfileSection{Title: title, Fields: []model.ProfileField{
		{Label: "School Name", Value: b.SchoolName},
		{Label: "Board", Value: b.Board},
		{Label: "Year of Exam", Value: b.Year},
		{Label: "Medium", Value: b.Medium},
		{Label: "Seat Number", Value: b.SeatNo},
		{Label: "Marks Obtained", Value: marks(b.MarksObtained, b.OutOfMarks)},
		{Label: "Percentage", Value: number(b.Percentage)},
	}}
}

func address(title string, a *model.Address) model.ProfileSection {
	return model.ProfileSection{Title: title, Fields: []model.ProfileField{
		{Label: "Address", Value: a.AddressLine},
		{Label: "City/Village", Value: a.Village},
		{Label: "Taluka", Value: a.Taluka},
		{Label: "District", Value: a.District},
		{Label: "State", Value: a.State},
		{Label: "Pin Code", Value: a.PinCode},
		{Label: "Post Office", Value: a.PostOffice},
		{Label: "Police Station", Value: a.PoliceStation},
		{Label: "Landline", Value: a.LandlineNo},
	}}
}

func marks(obtained, outOf *float64) string {
	if obtained == nil {
		return ""
	}
	if outOf == nil {
		return number(obtained)
	}
	return fmt.Sprintf("%s/%s", number(obtained), number(outOf))
}

func number(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func integer(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
