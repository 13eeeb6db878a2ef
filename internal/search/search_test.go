package search

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/sherlock/internal/model"
)

func demoRecords() []model.Student {
	dob := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
	sem := 8
	return []model.Student{
		{ID: 2, FullName: "Jane Demo Doe", LastName: "Doe", EnrollmentNumber: "ENRL20230002", FatherName: "Michael Doe"},
		{ID: 1, FullName: "John Demo Smith", LastName: "Smith", EnrollmentNumber: "ENRL20230001", EmailID: "john.smith@example.com", DateOfBirth: &dob},
		{ID: 3, FullName: "Anand Kulkarni", FatherLastName: "Kulkarni", Branch: "Civil", CurrentSemester: &sem,
			PermanentAddress: model.Address{Village: "Johnstown"}},
	}
}

func names(records []model.Student) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.FullName)
	}
	return out
}

func TestFilter_SingleTerm(t *testing.T) {
	got := Filter(demoRecords(), NewQuery("john", "", PolicyAny))
	assert.Equal(t, []string{"John Demo Smith"}, names(got))
}

func TestFilter_EmptyInputMatchesNothing(t *testing.T) {
	for _, q := range []Query{NewQuery("", "", PolicyAny), NewQuery("   \t", " ", PolicyHalf)} {
		got := Filter(demoRecords(), q)
		require.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestFilter_ExactEnrollment(t *testing.T) {
	got := Filter(demoRecords(), NewQuery("ENRL20230002", "", PolicyAny))
	require.Len(t, got, 1)
	assert.Equal(t, "Jane Demo Doe", got[0].FullName)
}

func TestFilter_UnanchoredSubstring(t *testing.T) {
	got := Filter(demoRecords(), NewQuery("an", "", PolicyAny))
	assert.Equal(t, []string{"Anand Kulkarni", "Jane Demo Doe"}, names(got))
}

func TestFilter_StringifiedFields(t *testing.T) {
	assert.Equal(t, []string{"John Demo Smith"}, names(Filter(demoRecords(), NewQuery("2000-01-15", "", PolicyAny))))
	assert.Equal(t, []string{"Anand Kulkarni"}, names(Filter(demoRecords(), NewQuery("8", "", PolicyAny))))
}

func TestFilter_AddressNotSearchable(t *testing.T) {
	got := Filter(demoRecords(), NewQuery("johnstown", "", PolicyAny))
	assert.Empty(t, got)
}

func TestFilter_MultiTermPolicies(t *testing.T) {
	q := "john nobody zzz qqq"

	loose := Filter(demoRecords(), NewQuery(q, "", PolicyAny))
	assert.Equal(t, []string{"John Demo Smith"}, names(loose))

	// four terms need two hits under the half policy
	half := Filter(demoRecords(), NewQuery(q, "", PolicyHalf))
	assert.Empty(t, half)

	half = Filter(demoRecords(), NewQuery("john smith zzz qqq", "", PolicyHalf))
	assert.Equal(t, []string{"John Demo Smith"}, names(half))
}

func TestFilter_SurnameIsFieldRestricted(t *testing.T) {
	// "michael" only appears in fatherName, outside the surname fields
	assert.Empty(t, Filter(demoRecords(), NewQuery("", "michael", PolicyAny)))

	got := Filter(demoRecords(), NewQuery("", "kulkarni", PolicyAny))
	assert.Equal(t, []string{"Anand Kulkarni"}, names(got))
}

func TestFilter_SurnameAndQueryAreCombined(t *testing.T) {
	got := Filter(demoRecords(), NewQuery("demo", "doe", PolicyAny))
	assert.Equal(t, []string{"Jane Demo Doe"}, names(got))

	assert.Empty(t, Filter(demoRecords(), NewQuery("civil", "doe", PolicyAny)))
}

func TestFilter_EmptyRecordNeverMatches(t *testing.T) {
	assert.False(t, NewQuery("a", "", PolicyAny).Matches(&model.Student{}))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := demoRecords()
	_ = Filter(records, NewQuery("demo", "", PolicyAny))
	assert.Equal(t, "Jane Demo Doe", records[0].FullName)
}

func TestSort_StableOnEqualNames(t *testing.T) {
	records := []model.Student{
		{ID: 9, FullName: "Same"},
		{ID: 4, FullName: "Same"},
		{ID: 4, FullName: "Same", EnrollmentNumber: "second"},
		{ID: 1, FullName: "Alpha"},
	}
	Sort(records)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(4), records[1].ID)
	assert.Empty(t, records[1].EnrollmentNumber)
	assert.Equal(t, "second", records[2].EnrollmentNumber)
	assert.Equal(t, int64(9), records[3].ID)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"john", "smith"}, Tokenize("  John SMITH john "))
	assert.Empty(t, Tokenize(" "))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyAny, p)

	p, err = ParsePolicy("HALF")
	require.NoError(t, err)
	assert.Equal(t, PolicyHalf, p)

	_, err = ParsePolicy("most")
	assert.Error(t, err)
}

func TestPolicyThreshold(t *testing.T) {
	assert.Equal(t, 1, PolicyAny.Threshold(5))
	assert.Equal(t, 1, PolicyHalf.Threshold(1))
	assert.Equal(t, 1, PolicyHalf.Threshold(3))
	assert.Equal(t, 2, PolicyHalf.Threshold(4))
	assert.Equal(t, 0, PolicyHalf.Threshold(0))
}

func TestFilterEqual(t *testing.T) {
	got := FilterEqual(demoRecords(), map[string]string{"enrollmentNumber": "ENRL20230001"})
	assert.Equal(t, []string{"John Demo Smith"}, names(got))

	assert.Len(t, FilterEqual(demoRecords(), nil), 3)
	assert.Empty(t, FilterEqual(demoRecords(), map[string]string{"nope": "x"}))
}

func TestPaginate_SecondPage(t *testing.T) {
	records := []model.Student{{FullName: "A"}, {FullName: "B"}, {FullName: "C"}}

	got := Paginate(records, 2, 1)
	assert.Equal(t, []string{"B"}, names(got))
	assert.Empty(t, Paginate(records, 4, 1))
	assert.NotNil(t, Paginate(records, 9, 10))
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	records := []model.Student{{FullName: "A"}, {FullName: "B"}, {FullName: "C"}, {FullName: "D"}, {FullName: "E"}, {FullName: "F"}}

	page, limit := Window(math.MaxInt/2+2, 4, DefaultSearchLimit)
	assert.Empty(t, Paginate(records, page, limit))
	assert.Empty(t, Paginate(records, math.MaxInt, 4))
	assert.Empty(t, Paginate(records, math.MaxInt/2+2, 4))
}

func TestPaginate_PagesReconstructSet(t *testing.T) {
	var records []model.Student
	for i := range 23 {
		records = append(records, model.Student{ID: int64(i)})
	}

	for _, limit := range []int{1, 4, 7, 23, 50} {
		var all []model.Student
		for page := 1; ; page++ {
			chunk := Paginate(records, page, limit)
			if len(chunk) == 0 {
				break
			}
			all = append(all, chunk...)
		}
		assert.Equal(t, records, all, "limit %d", limit)
	}
}

func TestWindow(t *testing.T) {
	page, limit := Window(0, 0, DefaultSearchLimit)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultSearchLimit, limit)

	page, limit = Window(3, 10000, DefaultListLimit)
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxLimit, limit)
}

func TestWindow_PageOffsetFitsInt(t *testing.T) {
	page, limit := Window(math.MaxInt, MaxLimit, DefaultSearchLimit)
	assert.Equal(t, math.MaxInt/MaxLimit+1, page)
	assert.Equal(t, MaxLimit, limit)
	assert.GreaterOrEqual(t, Offset(page, limit), 0)

	page, _ = Window(math.MaxInt, 1, DefaultSearchLimit)
	assert.Equal(t, math.MaxInt, page)

	assert.Equal(t, math.MaxInt, Offset(math.MaxInt, 4))
	assert.Equal(t, 0, Offset(0, 4))
	assert.Equal(t, 8, Offset(3, 4))
}

func TestSelection(t *testing.T) {
	assert.Equal(t, model.SelectionNone, Selection(0))
	assert.Equal(t, model.SelectionSingle, Selection(1))
	assert.Equal(t, model.SelectionMultiple, Selection(2))
}
