package model

import "time"

// Source identifies where a record set was resolved from.
type Source string

const (
	SourceDatabase Source = "database"
	SourceCSV      Source = "csv"
	SourceFallback Source = "fallback"
)

// Address is one structured address block.
type Address struct {
	AddressLine   string `json:"addressLine"`
	Village       string `json:"village"`
	Taluka        string `json:"taluka"`
	District      string `json:"district"`
	State         string `json:"state"`
	PinCode       string `json:"pinCode"`
	PostOffice    string `json:"areaPostOffice"`
	PoliceStation string `json:"areaPoliceStation"`
	LandlineNo    string `json:"landlineNo"`
}

// EducationBlock holds one prior-education record (10th, 12th, diploma).
type EducationBlock struct {
	SchoolName    string   `json:"schoolName"`
	Board         string   `json:"board"`
	Year          string   `json:"year"`
	Medium        string   `json:"medium"`
	SeatNo        string   `json:"seatNo"`
	MarksObtained *float64 `json:"marksObtained"`
	OutOfMarks    *float64 `json:"outOfMarks"`
	Percentage    *float64 `json:"percentage"`
}

// EntranceExam holds the entrance examination details.
type EntranceExam struct {
	Name       string   `json:"name"`
	SeatNo     string   `json:"seatNo"`
	Year       string   `json:"year"`
	Percentile *float64 `json:"percentile"`
	Rank       string   `json:"rank"`
}

// Student is the canonical student record. Every source is normalized into it.
type Student struct {
	ID int64 `json:"id"`

	// Identifiers
	SrNo               string `json:"srNo"`
	EnrollmentNumber   string `json:"enrollmentNumber"`
	RegistrationNumber string `json:"registrationNumber"`
	RollNumber         string `json:"rollNumber"`
	AbcIDNumber        string `json:"abcIdNumber"`

	// Identity
	FullName              string     `json:"fullName"`
	FirstName             string     `json:"firstName"`
	MiddleName            string     `json:"middleName"`
	LastName              string     `json:"lastName"`
	DateOfBirth           *time.Time `json:"dateOfBirth"`
	BirthPlace            string     `json:"birthPlace"`
	Gender                string     `json:"gender"`
	Nationality           string     `json:"nationality"`
	BloodGroup            string     `json:"bloodGroup"`
	MaritalStatus         string     `json:"maritalStatus"`
	Religion              string     `json:"religion"`
	Category              string     `json:"category"`
	SubCaste              string     `json:"subCaste"`
	SocialCategory        string     `json:"socialCategory"`
	AadharNumber          string     `json:"aadharNumber"`
	PassportNumber        string     `json:"passportNumber"`
	PhysicallyHandicapped string     `json:"physicallyHandicapped"`
	MotherTongue          string     `json:"motherTongue"`

	// Contact
	MobileNumber          string `json:"mobileNumber"`
	AlternateMobileNumber string `json:"alternateMobileNumber"`
	StudentMobileNo2      string `json:"studentMobileNo2"`
	EmailID               string `json:"emailId"`
	AlternateEmailID      string `json:"alternateEmailId"`

	// Family
	FatherName            string `json:"fatherName"`
	FatherMiddleName      string `json:"fatherMiddleName"`
	FatherLastName        string `json:"fatherLastName"`
	FatherMobileNumber    string `json:"fatherMobileNumber"`
	FatherOccupation      string `json:"fatherOccupation"`
	FatherQualification   string `json:"fatherQualification"`
	FatherEmail           string `json:"fatherEmail"`
	MotherName            string `json:"motherName"`
	MotherMobileNumber    string `json:"motherMobileNumber"`
	MotherOccupation      string `json:"motherOccupation"`
	MotherQualification   string `json:"motherQualification"`
	MotherEmail           string `json:"motherEmail"`
	AnnualFamilyIncome    string `json:"annualFamilyIncome"`
	AreBothParentsAlive   bool   `json:"areBothParentsAlive"`
	GuardianName          string `json:"guardianName"`
	GuardianContactNo     string `json:"guardianContactNo"`
	RelationWithGuardian  string `json:"relationWithGuardian"`
	GuardianOccupation    string `json:"guardianOccupation"`
	GuardianQualification string `json:"guardianQualification"`

	// Academic
	ProgramLevel      string     `json:"programLevel"`
	CollegeName       string     `json:"collegeName"`
	Degree            string     `json:"degree"`
	Branch            string     `json:"branch"`
	Medium            string     `json:"medium"`
	AdmissionBatch    string     `json:"admissionBatch"`
	AcademicYear      string     `json:"academicYear"`
	CurrentYear       *int       `json:"currentYear"`
	CurrentSemester   *int       `json:"currentSemester"`
	AdmissionDate     *time.Time `json:"admissionDate"`
	AdmissionType     string     `json:"admissionType"`
	AdmissionThrough  string     `json:"admissionThrough"`
	AdmissionCategory string     `json:"admissionCategory"`
	Status            string     `json:"status"`
	IsHosteller       bool       `json:"isHosteller"`

	Tenth    EducationBlock `json:"tenth"`
	Twelfth  EducationBlock `json:"twelfth"`
	Diploma  EducationBlock `json:"diploma"`
	Entrance EntranceExam   `json:"entranceExam"`

	// Address
	PermanentAddress Address `json:"permanentAddress"`
	LocalAddress     Address `json:"localAddress"`
}
