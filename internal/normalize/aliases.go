package normalize

import (
	"strings"

	"github.com/stemsi/sherlock/internal/model"
)

// AliasTable maps a canonical field key to the ordered raw keys that may
// carry its value. The first present, non-empty candidate wins.
type AliasTable map[string][]string

// Candidates returns the raw keys tried for a canonical field.
func (t AliasTable) Candidates(key string) []string {
	return t[key]
}

// csvHeaders lists the header spellings seen across historical CSV exports.
// Order matters.
var csvHeaders = AliasTable{
	"srNo":               {"SR.NO.", "SRNO", "SR_NO", "srNo"},
	"registrationNumber": {"REGISTRATION_NO", "REGISTRATION NUMBER", "REG_NO", "registrationNo", "registrationNumber"},
	"enrollmentNumber":   {"ENROLLMENT NUMBER", "ENROLLMENT_NUMBER", "enrollmentNumber", "ENROLLMENT"},
	"rollNumber":         {"ROLLNO", "ROLL_NUMBER", "ROLL_NO", "rollNumber"},
	"abcIdNumber":        {"ABC ID NUMBER", "ABC_ID_NUMBER", "abcIdNumber"},

	"fullName":              {"FULLNAME", "NAME", "FULL_NAME", "fullName"},
	"firstName":             {"FIRSTNAME", "FIRST_NAME", "firstName"},
	"middleName":            {"MIDDLENAME", "MIDDLE_NAME", "MIDDLE NAME", "middleName"},
	"lastName":              {"LASTNAME", "LAST_NAME", "LAST NAME", "lastName"},
	"dateOfBirth":           {"DOB", "DATE OF BIRTH", "DATE_OF_BIRTH", "dateOfBirth"},
	"birthPlace":            {"BIRTH_PLACE", "BIRTH PLACE", "birthPlace"},
	"gender":                {"GENDER", "gender"},
	"nationality":           {"NATIONALITY", "nationality"},
	"bloodGroup":            {"BLOOD GROUP", "BLOOD_GROUP", "bloodGroup"},
	"religion":              {"RELIGION", "religion"},
	"category":              {"CATEGORY", "category"},
	"subCaste":              {"SUB CATEGORY", "SUB_CATEGORY", "SUB_CASTE", "subcategory", "subCaste"},
	"aadharNumber":          {"AADHAR NUMBER", "AADHAR_NUMBER", "ADHAAR NO", "aadharNumber"},
	"passportNumber":        {"PASSPORT NO.", "PASSPORT NO", "PASSPORT_NUMBER", "passportNumber"},
	"physicallyHandicapped": {"PHYSICALLY HANDICAPPED", "PHYSICALLY_HANDICAPPED", "physicallyHandicapped"},

	"mobileNumber":          {"MOBILE NO", "MOBILE_NO", "MOBILE NO.", "mobileNumber"},
	"alternateMobileNumber": {"ALTERNATE MOBILE NO", "ALTERNATE_MOBILE_NO", "STUDENT MOBILE NO.2", "alternateMobileNumber"},
	"studentMobileNo2":      {"STUDENT MOBILE NO.2", "STUDENT_MOBILE_NO2", "studentMobileNo2"},
	"emailId":               {"EMAIL ID", "EMAILID", "EMAIL", "emailId"},

	"fatherName":            {"FATHER NAME", "FATHERNAME", "fatherName"},
	"fatherMiddleName":      {"FATHER MIDDLE NAME", "FATHERMIDDLENAME", "fatherMiddleName"},
	"fatherLastName":        {"FATHER LAST NAME", "FATHERLASTNAME", "fatherLastName"},
	"fatherMobileNumber":    {"FATHER MOBILE NO", "FATHER_MOBILE_NO", "FATHERMOBILE", "fatherMobileNumber"},
	"fatherOccupation":      {"FATHER OCCUPATION", "FATHER_OCCUPATION", "FATHER'S OCCUPATION", "fatherOccupation"},
	"fatherQualification":   {"FATHER QUALIFICATION", "FATHER_QUALIFICATION", "FATHER'S QUALIFICATION", "fatherQualification"},
	"motherName":            {"MOTHER NAME", "MOTHERNAME", "motherName"},
	"motherMobileNumber":    {"MOTHER MOBILE NO", "MOTHER_MOBILE_NO", "MOTHERMOBILE", "motherMobileNumber"},
	"motherOccupation":      {"MOTHER OCCUPATION", "MOTHER_OCCUPATION", "MOTHER'S OCCUPATION", "motherOccupation"},
	"motherQualification":   {"MOTHER QUALIFICATION", "MOTHER_QUALIFICATION", "MOTHER'S QUALIFICATION", "motherQualification"},
	"areBothParentsAlive":   {"IS PARENTS ALIVE", "IS_PARENTS_ALIVE", "areBothParentsAlive"},
	"guardianName":          {"GUARDIAN NAME", "GUARDIAN_NAME", "guardianName"},
	"guardianContactNo":     {"GUARDIAN CONTACT NO", "GUARDIAN_CONTACT_NO", "guardianContactNo"},
	"relationWithGuardian":  {"RELATION WITH GUARDIAN", "RELATION_WITH_GUARDIAN", "relationWithGuardian"},
	"guardianOccupation":    {"GUARDIAN OCCUPATION", "GUARDIAN_OCCUPATION", "guardianOccupation"},
	"guardianQualification": {"GUARDIAN QUALIFICATION", "GUARDIAN_QUALIFICATION", "guardianQualification"},

	"programLevel":     {"PROGRAM LEVEL", "PROGRAM_LEVEL", "programLevel"},
	"collegeName":      {"SCHOOL/COLLEGE", "COLLEGE NAME", "COLLEGE_NAME", "collegeName"},
	"degree":           {"DEGREE", "degree"},
	"branch":           {"PROGRAMME/BRANCH", "BRANCH", "branch"},
	"medium":           {"MEDIUM OF INSTRUCTION", "MEDIUM", "medium"},
	"admissionBatch":   {"ADMISSION BATCH", "ADMISSION_BATCH", "admissionBatch"},
	"academicYear":     {"ACADEMIC YEAR", "ACADEMIC_YEAR", "academicYear"},
	"currentYear":      {"YEAR", "CURRENT_YEAR", "currentYear"},
	"currentSemester":  {"SEMESTER", "CURRENT_SEMESTER", "currentSemester"},
	"admissionDate":    {"ADMISSION DATE", "ADMISSION_DATE", "admissionDate"},
	"admissionType":    {"ADMISSION TYPE", "ADMISSION_TYPE", "admissionType"},
	"admissionThrough": {"ADMISSION THROUGH", "ADMISSION_THROUGH", "admissionThrough"},
	"status":           {"STATUS", "status"},
	"isHosteller":      {"HOSTELLER", "IS_HOSTELLER", "isHosteller"},

	"entranceExamName":       {"ENTRANCE EXAM NAME", "ENTRANCE_EXAM_NAME", "entranceExamName"},
	"entranceExamSeatNo":     {"ENTRANCE EXAM SEAT NO", "ENTRANCE_EXAM_SEAT_NO", "entranceExamSeatNo"},
	"entranceExamYear":       {"ENTRANCE EXAM YEAR", "ENTRANCE_EXAM_YEAR", "entranceExamYear"},
	"entranceExamPercentile": {"ENTRANCE EXAM PERCENTILE", "ENTRANCE_EXAM_PERCENTILE", "entranceExamPercentile"},
	"entranceExamRank":       {"ENTRANCE EXAM RANK", "ENTRANCE_EXAM_RANK", "entranceExamRank"},

	"permanentAddressLine":   {"ADDRESS(PERMANANT)", "P.ADDRESS", "PERMANENT_ADDRESS", "permanentAddressLine"},
	"permanentVillage":       {"CITY/VILLAGE(PERMANANT)", "P.CITY", "PERMANENT_CITY", "permanentCity", "permanentVillage"},
	"permanentTaluka":        {"TALUKA_PERMANANT", "PERMANENT_TALUKA", "permanentTaluka"},
	"permanentDistrict":      {"DISTRICT_PERMANANT", "PERMANENT_DISTRICT", "permanentDistrict"},
	"permanentState":         {"STATE_PERMANANT", "P.STATE", "PERMANENT_STATE", "permanentState"},
	"permanentPinCode":       {"PIN_PER", "P.PINCODE", "PERMANENT_PINCODE", "permanentPincode", "permanentPinCode"},
	"permanentPostOffice":    {"AREA POST OFFICE", "PERMANENT_POST_OFFICE", "permanentPostOffice"},
	"permanentPoliceStation": {"AREA POLICE STATION", "PERMANENT_POLICE_STATION", "permanentPoliceStation"},
	"permanentLandline":      {"LANDLINE_PERMANANT", "PERMANENT_LANDLINE", "permanentLandline"},

	"localAddressLine":   {"ADDRESS(LOCAL)", "L.ADDRESS", "LOCAL_ADDRESS", "localAddressLine"},
	"localVillage":       {"CITY/VILLAGE(LOCAL)", "L.CITY", "LOCAL_CITY", "localCity", "localVillage"},
	"localTaluka":        {"TALUKA_LOCAL", "LOCAL_TALUKA", "localTaluka"},
	"localDistrict":      {"DISTRICT_LOCAL", "LOCAL_DISTRICT", "localDistrict"},
	"localState":         {"STATE_LOCAL", "L.STATE", "LOCAL_STATE", "localState"},
	"localPinCode":       {"PIN_LOCAL", "L.PINCODE", "LOCAL_PINCODE", "localPincode", "localPinCode"},
	"localPostOffice":    {"AREA POST OFFICE LOCAL", "LOCAL_POST_OFFICE", "localPostOffice"},
	"localPoliceStation": {"AREA POLICE STATION LOCAL", "LOCAL_POLICE_STATION", "localPoliceStation"},
	"localLandline":      {"LANDLINE_LOCAL", "LOCAL_LANDLINE", "localLandline"},
}

// educationHeaders are the per-attribute header suffixes of a prior-education
// block, keyed by the registry key suffix.
var educationHeaders = map[string][]string{
	"SchoolName":    {"SCHOOL/COLLEGE NAME", "SCHOOL NAME"},
	"Board":         {"BOARD"},
	"Year":          {"YEAR OF EXAM", "YEAR"},
	"Medium":        {"MEDIUM"},
	"SeatNo":        {"SEAT NO", "SEAT NO."},
	"MarksObtained": {"MARKS OBTAINED"},
	"OutOfMarks":    {"OUT OF MARKS", "OUT OF"},
	"Percentage":    {"PERCENTAGE", "PERCENTILE"},
}

var educationPrefixes = map[string]string{
	"tenth":   "10TH",
	"twelfth": "12TH",
	"diploma": "DIPLOMA",
}

// Tables holds the alias table for every source.
var Tables = map[model.Source]AliasTable{
	model.SourceCSV:      buildCSVTable(),
	model.SourceDatabase: buildTable(func(f model.Field) []string { return []string{f.Column} }),
	model.SourceFallback: buildTable(func(f model.Field) []string { return []string{f.Key} }),
}

func buildTable(candidates func(model.Field) []string) AliasTable {
	t := make(AliasTable, len(model.Fields))
	for _, f := range model.Fields {
		t[f.Key] = candidates(f)
	}
	return t
}

func buildCSVTable() AliasTable {
	return buildTable(func(f model.Field) []string {
		if c, ok := csvHeaders[f.Key]; ok {
			return c
		}
		for prefix, header := range educationPrefixes {
			suffix, ok := strings.CutPrefix(f.Key, prefix)
			if !ok {
				continue
			}
			var out []string
			for _, h := range educationHeaders[suffix] {
				out = append(out, header+" "+h, header+"_"+strings.ReplaceAll(h, " ", "_"))
			}
			return append(out, f.Key)
		}
		return []string{strings.ToUpper(f.Column), f.Key}
	})
}
