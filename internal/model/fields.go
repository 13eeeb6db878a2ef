package model

import (
	"strconv"
	"time"
)

// Kind is the storage type of a canonical field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindDate
	KindBool
)

// Group classifies a canonical field by the part of the profile it belongs to.
type Group string

const (
	GroupIdentifier Group = "identifier"
	GroupIdentity   Group = "identity"
	GroupContact    Group = "contact"
	GroupFamily     Group = "family"
	GroupAcademic   Group = "academic"
	GroupEducation  Group = "education"
	GroupAddress    Group = "address"
)

// DateLayout is the textual form of date fields for matching and display.
const DateLayout = "2006-01-02"

// Field describes one canonical attribute of Student: its canonical key, its
// database column, and how to reach it on a record.
type Field struct {
	Key    string
	Column string
	Kind   Kind
	Group  Group
	ref    func(s *Student) any
}

// Ref returns a pointer to the field's storage on s: *string, **int,
// **float64, **time.Time or *bool depending on Kind.
func (f Field) Ref(s *Student) any {
	return f.ref(s)
}

// Searchable reports whether the field belongs to the free-text searchable set.
func (f Field) Searchable() bool {
	return f.Group != GroupAddress && f.Kind != KindBool
}

// Value returns the field value in a form the database driver accepts.
func (f Field) Value(s *Student) any {
	switch p := f.ref(s).(type) {
	case *string:
		return *p
	case **int:
		return *p
	case **float64:
		return *p
	case **time.Time:
		return *p
	case *bool:
		return *p
	}
	return nil
}

// Text returns the field value stringified for substring matching. Unset
// numeric and date fields yield "".
func (f Field) Text(s *Student) string {
	switch p := f.ref(s).(type) {
	case *string:
		return *p
	case **int:
		if *p == nil {
			return ""
		}
		return strconv.Itoa(**p)
	case **float64:
		if *p == nil {
			return ""
		}
		return strconv.FormatFloat(**p, 'f', -1, 64)
	case **time.Time:
		if *p == nil {
			return ""
		}
		return (*p).Format(DateLayout)
	case *bool:
		return strconv.FormatBool(*p)
	}
	return ""
}

func str(key, column string, g Group, ref func(*Student) *string) Field {
	return Field{Key: key, Column: column, Kind: KindString, Group: g, ref: func(s *Student) any { return ref(s) }}
}

func integer(key, column string, g Group, ref func(*Student) **int) Field {
	return Field{Key: key, Column: column, Kind: KindInt, Group: g, ref: func(s *Student) any { return ref(s) }}
}

func float(key, column string, g Group, ref func(*Student) **float64) Field {
	return Field{Key: key, Column: column, Kind: KindFloat, Group: g, ref: func(s *Student) any { return ref(s) }}
}

func date(key, column string, g Group, ref func(*Student) **time.Time) Field {
	return Field{Key: key, Column: column, Kind: KindDate, Group: g, ref: func(s *Student) any { return ref(s) }}
}

func boolean(key, column string, g Group, ref func(*Student) *bool) Field {
	return Field{Key: key, Column: column, Kind: KindBool, Group: g, ref: func(s *Student) any { return ref(s) }}
}

func education(prefix string, g Group, block func(*Student) *EducationBlock) []Field {
	return []Field{
		str(prefix+"SchoolName", prefix+"_school_name", g, func(s *Student) *string { return &block(s).SchoolName }),
		str(prefix+"Board", prefix+"_board", g, func(s *Student) *string { return &block(s).Board }),
		str(prefix+"Year", prefix+"_year", g, func(s *Student) *string { return &block(s).Year }),
		str(prefix+"Medium", prefix+"_medium", g, func(s *Student) *string { return &block(s).Medium }),
		str(prefix+"SeatNo", prefix+"_seat_no", g, func(s *Student) *string { return &block(s).SeatNo }),
		float(prefix+"MarksObtained", prefix+"_marks_obtained", g, func(s *Student) **float64 { return &block(s).MarksObtained }),
		float(prefix+"OutOfMarks", prefix+"_out_of_marks", g, func(s *Student) **float64 { return &block(s).OutOfMarks }),
		float(prefix+"Percentage", prefix+"_percentage", g, func(s *Student) **float64 { return &block(s).Percentage }),
	}
}

func address(prefix string, block func(*Student) *Address) []Field {
	g := GroupAddress
	return []Field{
		str(prefix+"AddressLine", prefix+"_address_line", g, func(s *Student) *string { return &block(s).AddressLine }),
		str(prefix+"Village", prefix+"_village", g, func(s *Student) *string { return &block(s).Village }),
		str(prefix+"Taluka", prefix+"_taluka", g, func(s *Student) *string { return &block(s).Taluka }),
		str(prefix+"District", prefix+"_district", g, func(s *Student) *string { return &block(s).District }),
		str(prefix+"State", prefix+"_state", g, func(s *Student) *string { return &block(s).State }),
		str(prefix+"PinCode", prefix+"_pin_code", g, func(s *Student) *string { return &block(s).PinCode }),
		str(prefix+"PostOffice", prefix+"_post_office", g, func(s *Student) *string { return &block(s).PostOffice }),
		str(prefix+"PoliceStation", prefix+"_police_station", g, func(s *Student) *string { return &block(s).PoliceStation }),
		str(prefix+"Landline", prefix+"_landline", g, func(s *Student) *string { return &block(s).LandlineNo }),
	}
}

// Fields is the canonical field registry, in display order. The database
// id is not part of it.
var Fields = buildFields()

var fieldsByKey = indexFields(Fields)

// FieldByKey looks up a canonical field by its key.
func FieldByKey(key string) (Field, bool) {
	f, ok := fieldsByKey[key]
	return f, ok
}

// SurnameFields is the narrow field set a separate surname filter is checked against.
var SurnameFields = []Field{
	fieldsByKey["fullName"],
	fieldsByKey["lastName"],
	fieldsByKey["fatherLastName"],
}

// SearchableFields returns the fields used for free-text matching.
func SearchableFields() []Field {
	out := make([]Field, 0, len(Fields))
	for _, f := range Fields {
		if f.Searchable() {
			out = append(out, f)
		}
	}
	return out
}

func indexFields(fields []Field) map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Key] = f
	}
	return m
}

func buildFields() []Field {
	fields := []Field{
		str("srNo", "sr_no", GroupIdentifier, func(s *Student) *string { return &s.SrNo }),
		str("enrollmentNumber", "enrollment_number", GroupIdentifier, func(s *Student) *string { return &s.EnrollmentNumber }),
		str("registrationNumber", "registration_number", GroupIdentifier, func(s *Student) *string { return &s.RegistrationNumber }),
		str("rollNumber", "roll_number", GroupIdentifier, func(s *Student) *string { return &s.RollNumber }),
		str("abcIdNumber", "abc_id_number", GroupIdentifier, func(s *Student) *string { return &s.AbcIDNumber }),

		str("fullName", "full_name", GroupIdentity, func(s *Student) *string { return &s.FullName }),
		str("firstName", "first_name", GroupIdentity, func(s *Student) *string { return &s.FirstName }),
		str("middleName", "middle_name", GroupIdentity, func(s *Student) *string { return &s.MiddleName }),
		str("lastName", "last_name", GroupIdentity, func(s *Student) *string { return &s.LastName }),
		date("dateOfBirth", "date_of_birth", GroupIdentity, func(s *Student) **time.Time { return &s.DateOfBirth }),
		str("birthPlace", "birth_place", GroupIdentity, func(s *Student) *string { return &s.BirthPlace }),
		str("gender", "gender", GroupIdentity, func(s *Student) *string { return &s.Gender }),
		str("nationality", "nationality", GroupIdentity, func(s *Student) *string { return &s.Nationality }),
		str("bloodGroup", "blood_group", GroupIdentity, func(s *Student) *string { return &s.BloodGroup }),
		str("maritalStatus", "marital_status", GroupIdentity, func(s *Student) *string { return &s.MaritalStatus }),
		str("religion", "religion", GroupIdentity, func(s *Student) *string { return &s.Religion }),
		str("category", "category", GroupIdentity, func(s *Student) *string { return &s.Category }),
		str("subCaste", "sub_caste", GroupIdentity, func(s *Student) *string { return &s.SubCaste }),
		str("socialCategory", "social_category", GroupIdentity, func(s *Student) *string { return &s.SocialCategory }),
		str("aadharNumber", "aadhar_number", GroupIdentity, func(s *Student) *string { return &s.AadharNumber }),
		str("passportNumber", "passport_number", GroupIdentity, func(s *Student) *string { return &s.PassportNumber }),
		str("physicallyHandicapped", "physically_handicapped", GroupIdentity, func(s *Student) *string { return &s.PhysicallyHandicapped }),
		str("motherTongue", "mother_tongue", GroupIdentity, func(s *Student) *string { return &s.MotherTongue }),

		str("mobileNumber", "mobile_number", GroupContact, func(s *Student) *string { return &s.MobileNumber }),
		str("alternateMobileNumber", "alternate_mobile_number", GroupContact, func(s *Student) *string { return &s.AlternateMobileNumber }),
		str("studentMobileNo2", "student_mobile_no2", GroupContact, func(s *Student) *string { return &s.StudentMobileNo2 }),
		str("emailId", "email_id", GroupContact, func(s *Student) *string { return &s.EmailID }),
		str("alternateEmailId", "alternate_email_id", GroupContact, func(s *Student) *string { return &s.AlternateEmailID }),

		str("fatherName", "father_name", GroupFamily, func(s *Student) *string { return &s.FatherName }),
		str("fatherMiddleName", "father_middle_name", GroupFamily, func(s *Student) *string { return &s.FatherMiddleName }),
		str("fatherLastName", "father_last_name", GroupFamily, func(s *Student) *string { return &s.FatherLastName }),
		str("fatherMobileNumber", "father_mobile_number", GroupFamily, func(s *Student) *string { return &s.FatherMobileNumber }),
		str("fatherOccupation", "father_occupation", GroupFamily, func(s *Student) *string { return &s.FatherOccupation }),
		str("fatherQualification", "father_qualification", GroupFamily, func(s *Student) *string { return &s.FatherQualification }),
		str("fatherEmail", "father_email", GroupFamily, func(s *Student) *string { return &s.FatherEmail }),
		str("motherName", "mother_name", GroupFamily, func(s *Student) *string { return &s.MotherName }),
		str("motherMobileNumber", "mother_mobile_number", GroupFamily, func(s *Student) *string { return &s.MotherMobileNumber }),
		str("motherOccupation", "mother_occupation", GroupFamily, func(s *Student) *string { return &s.MotherOccupation }),
		str("motherQualification", "mother_qualification", GroupFamily, func(s *Student) *string { return &s.MotherQualification }),
		str("motherEmail", "mother_email", GroupFamily, func(s *Student) *string { return &s.MotherEmail }),
		str("annualFamilyIncome", "annual_family_income", GroupFamily, func(s *Student) *string { return &s.AnnualFamilyIncome }),
		boolean("areBothParentsAlive", "are_both_parents_alive", GroupFamily, func(s *Student) *bool { return &s.AreBothParentsAlive }),
		str("guardianName", "guardian_name", GroupFamily, func(s *Student) *string { return &s.GuardianName }),
		str("guardianContactNo", "guardian_contact_no", GroupFamily, func(s *Student) *string { return &s.GuardianContactNo }),
		str("relationWithGuardian", "relation_with_guardian", GroupFamily, func(s *Student) *string { return &s.RelationWithGuardian }),
		str("guardianOccupation", "guardian_occupation", GroupFamily, func(s *Student) *string { return &s.GuardianOccupation }),
		str("guardianQualification", "guardian_qualification", GroupFamily, func(s *Student) *string { return &s.GuardianQualification }),

		str("programLevel", "program_level", GroupAcademic, func(s *Student) *string { return &s.ProgramLevel }),
		str("collegeName", "college_name", GroupAcademic, func(s *Student) *string { return &s.CollegeName }),
		str("degree", "degree", GroupAcademic, func(s *Student) *string { return &s.Degree }),
		str("branch", "branch", GroupAcademic, func(s *Student) *string { return &s.Branch }),
		str("medium", "medium", GroupAcademic, func(s *Student) *string { return &s.Medium }),
		str("admissionBatch", "admission_batch", GroupAcademic, func(s *Student) *string { return &s.AdmissionBatch }),
		str("academicYear", "academic_year", GroupAcademic, func(s *Student) *string { return &s.AcademicYear }),
		integer("currentYear", "current_year", GroupAcademic, func(s *Student) **int { return &s.CurrentYear }),
		integer("currentSemester", "current_semester", GroupAcademic, func(s *Student) **int { return &s.CurrentSemester }),
		date("admissionDate", "admission_date", GroupAcademic, func(s *Student) **time.Time { return &s.AdmissionDate }),
		str("admissionType", "admission_type", GroupAcademic, func(s *Student) *string { return &s.AdmissionType }),
		str("admissionThrough", "admission_through", GroupAcademic, func(s *Student) *string { return &s.AdmissionThrough }),
		str("admissionCategory", "admission_category", GroupAcademic, func(s *Student) *string { return &s.AdmissionCategory }),
		str("status", "status", GroupAcademic, func(s *Student) *string { return &s.Status }),
		boolean("isHosteller", "is_hosteller", GroupAcademic, func(s *Student) *bool { return &s.IsHosteller }),
	}

	fields = append(fields, education("tenth", GroupEducation, func(s *Student) *EducationBlock { return &s.Tenth })...)
	fields = append(fields, education("twelfth", GroupEducation, func(s *Student) *EducationBlock { return &s.Twelfth })...)
	fields = append(fields, education("diploma", GroupEducation, func(s *Student) *EducationBlock { return &s.Diploma })...)
	fields = append(fields,
		str("entranceExamName", "entrance_exam_name", GroupEducation, func(s *Student) *string { return &s.Entrance.Name }),
		str("entranceExamSeatNo", "entrance_exam_seat_no", GroupEducation, func(s *Student) *string { return &s.Entrance.SeatNo }),
		str("entranceExamYear", "entrance_exam_year", GroupEducation, func(s *Student) *string { return &s.Entrance.Year }),
		float("entranceExamPercentile", "entrance_exam_percentile", GroupEducation, func(s *Student) **float64 { return &s.Entrance.Percentile }),
		str("entranceExamRank", "entrance_exam_rank", GroupEducation, func(s *Student) *string { return &s.Entrance.Rank }),
	)
	fields = append(fields, address("permanent", func(s *Student) *Address { return &s.PermanentAddress })...)
	fields = append(fields, address("local", func(s *Student) *Address { return &s.LocalAddress })...)

	return fields
}
