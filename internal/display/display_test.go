package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/sherlock/internal/model"
)

func TestAadhar(t *testing.T) {
	cases := map[string]string{
		"123412341234":     "1234 1234 1234",
		"1234-1234-1234":   "1234 1234 1234",
		"123412341234.0":   "1234 1234 1234",
		"98765":            "98765 (Invalid: must be 12 digits)",
		"1234123412345678": "1234123412345678 (Invalid: must be 12 digits)",
		"":                 "Not provided",
		"  ":               "Not provided",
	}
	for in, want := range cases {
		assert.Equal(t, want, Aadhar(in), "input %q", in)
	}
}

func TestBuildProfile_DropsEmptyValuesAndSections(t *testing.T) {
	obtained, outOf := 432.0, 500.0
	sem := 5
	s := &model.Student{
		FullName:         "Jane Demo Doe",
		EnrollmentNumber: "ENRL20230002",
		FatherName:       "Michael",
		FatherLastName:   "Doe",
		CurrentSemester:  &sem,
		Tenth:            model.EducationBlock{Board: "STATE", MarksObtained: &obtained, OutOfMarks: &outOf},
	}

	sections := BuildProfile(s)

	titles := make([]string, 0, len(sections))
	for _, sec := range sections {
		titles = append(titles, sec.Title)
	}
	assert.Equal(t, []string{"Personal Information", "Family Information", "Academic Information", "10th Education"}, titles)

	personal := sections[0].Fields
	assert.Equal(t, model.ProfileField{Label: "Full Name", Value: "Jane Demo Doe"}, personal[0])
	assert.Contains(t, personal, model.ProfileField{Label: "Aadhar Number", Value: "Not provided"})

	assert.Contains(t, sections[1].Fields, model.ProfileField{Label: "Father's Name", Value: "Michael Doe"})
	assert.Contains(t, sections[2].Fields, model.ProfileField{Label: "Semester", Value: "5"})

	require.Len(t, sections[3].Fields, 2)
	assert.Equal(t, "432/500", sections[3].Fields[1].Value)
}
