package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/sherlock/internal/model"
)

func TestNormalize_CSVHeaderDialects(t *testing.T) {
	raw := Raw{
		"ENROLLMENT NUMBER":   "ENRL20230001",
		"REGISTRATION_NO":     "REG20230001",
		"ROLLNO":              "ROLL001",
		"NAME":                "John Demo Smith",
		"MOBILE NO.":          "9876543210",
		"EMAILID":             "john.smith@example.com",
		"DOB":                 "2000-01-15",
		"FATHERNAME":          "Robert Smith",
		"FATHERMOBILE":        "9876543211",
		"TALUKA_PERMANANT":    "Haveli",
		"PIN_LOCAL":           "411001",
		"HOSTELLER":           "YES",
		"10TH BOARD":          "STATE",
		"10TH MARKS OBTAINED": "432",
	}

	s := Normalize(raw, model.SourceCSV)

	assert.Equal(t, "ENRL20230001", s.EnrollmentNumber)
	assert.Equal(t, "REG20230001", s.RegistrationNumber)
	assert.Equal(t, "ROLL001", s.RollNumber)
	assert.Equal(t, "John Demo Smith", s.FullName)
	assert.Equal(t, "9876543210", s.MobileNumber)
	assert.Equal(t, "john.smith@example.com", s.EmailID)
	require.NotNil(t, s.DateOfBirth)
	assert.Equal(t, time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC), *s.DateOfBirth)
	assert.Equal(t, "Robert Smith", s.FatherName)
	assert.Equal(t, "9876543211", s.FatherMobileNumber)
	assert.Equal(t, "Haveli", s.PermanentAddress.Taluka)
	assert.Equal(t, "411001", s.LocalAddress.PinCode)
	assert.True(t, s.IsHosteller)
	assert.Equal(t, "STATE", s.Tenth.Board)
	require.NotNil(t, s.Tenth.MarksObtained)
	assert.Equal(t, 432.0, *s.Tenth.MarksObtained)
	assert.Zero(t, s.ID)
}

func TestNormalize_FirstNonEmptyAliasWins(t *testing.T) {
	raw := Raw{
		"ENROLLMENT NUMBER": "  ",
		"ENROLLMENT_NUMBER": nil,
		"enrollmentNumber":  "E-3",
		"ENROLLMENT":        "E-4",
	}

	s := Normalize(raw, model.SourceCSV)
	assert.Equal(t, "E-3", s.EnrollmentNumber)
}

func TestNormalize_ComposesFullName(t *testing.T) {
	raw := Raw{"FIRSTNAME": "Jane", "MIDDLE NAME": "", "LAST NAME": " Doe "}

	s := Normalize(raw, model.SourceCSV)
	assert.Equal(t, "Jane Doe", s.FullName)
}

func TestNormalize_UnnamedRecordKeepsEmptyName(t *testing.T) {
	s := Normalize(Raw{"ENROLLMENT NUMBER": "E-9"}, model.SourceCSV)
	assert.Empty(t, s.FullName)

	stored := ForIngestion(s)
	assert.Equal(t, PlaceholderName, stored.FullName)
	assert.Equal(t, "E-9", stored.EnrollmentNumber)
}

func TestNormalize_MalformedValuesBecomeNil(t *testing.T) {
	raw := Raw{
		"DOB":                 "not a date",
		"YEAR":                "unknown",
		"SEMESTER":            "0",
		"12TH MARKS OBTAINED": "absent",
	}

	s := Normalize(raw, model.SourceCSV)
	assert.Nil(t, s.DateOfBirth)
	assert.Nil(t, s.CurrentYear)
	assert.Nil(t, s.CurrentSemester)
	assert.Nil(t, s.Twelfth.MarksObtained)
}

func TestNormalize_LooseNumbers(t *testing.T) {
	raw := Raw{"YEAR": "3rd", "SEMESTER": "05", "12TH PERCENTAGE": "87.5%"}

	s := Normalize(raw, model.SourceCSV)
	require.NotNil(t, s.CurrentYear)
	assert.Equal(t, 3, *s.CurrentYear)
	require.NotNil(t, s.CurrentSemester)
	assert.Equal(t, 5, *s.CurrentSemester)
	require.NotNil(t, s.Twelfth.Percentage)
	assert.Equal(t, 87.5, *s.Twelfth.Percentage)
}

func TestNormalize_DayFirstDates(t *testing.T) {
	s := Normalize(Raw{"DOB": "20/05/2001"}, model.SourceCSV)
	require.NotNil(t, s.DateOfBirth)
	assert.Equal(t, time.May, s.DateOfBirth.Month())
	assert.Equal(t, 20, s.DateOfBirth.Day())
}

func TestNormalize_DatabaseRow(t *testing.T) {
	dob := time.Date(2001, 5, 20, 0, 0, 0, 0, time.UTC)
	raw := Raw{
		"id":                int64(42),
		"full_name":         "Jane Demo Doe",
		"enrollment_number": "ENRL20230002",
		"date_of_birth":     dob,
		"current_semester":  int32(4),
		"is_hosteller":      true,
		"tenth_percentage":  float64(91.2),
	}

	s := Normalize(raw, model.SourceDatabase)
	assert.Equal(t, int64(42), s.ID)
	assert.Equal(t, "Jane Demo Doe", s.FullName)
	assert.Equal(t, "ENRL20230002", s.EnrollmentNumber)
	require.NotNil(t, s.DateOfBirth)
	assert.True(t, dob.Equal(*s.DateOfBirth))
	require.NotNil(t, s.CurrentSemester)
	assert.Equal(t, 4, *s.CurrentSemester)
	assert.True(t, s.IsHosteller)
	require.NotNil(t, s.Tenth.Percentage)
	assert.Equal(t, 91.2, *s.Tenth.Percentage)
}

func TestNormalize_DatabaseIgnoresCSVHeaders(t *testing.T) {
	s := Normalize(Raw{"ENROLLMENT NUMBER": "E-1"}, model.SourceDatabase)
	assert.Empty(t, s.EnrollmentNumber)
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := Raw{"NAME": "A B", "DOB": "2000-01-01", "YEAR": "2", "12TH PERCENTAGE": "70"}

	assert.Equal(t, Normalize(raw, model.SourceCSV), Normalize(raw, model.SourceCSV))
}

func TestCSVTable_CoversEveryField(t *testing.T) {
	table := Tables[model.SourceCSV]
	for _, f := range model.Fields {
		assert.NotEmpty(t, table.Candidates(f.Key), f.Key)
	}
	assert.Equal(t, []string{"10TH BOARD", "10TH_BOARD", "tenthBoard"}, table.Candidates("tenthBoard"))
}

func TestComposeName(t *testing.T) {
	assert.Equal(t, "A C", ComposeName("A", " ", "C"))
	assert.Empty(t, ComposeName("", ""))
}
