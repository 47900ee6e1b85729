package doctors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(docs []Doctor) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Name)
	}
	return out
}

func TestNewDirectory_SixDoctorsInOrder(t *testing.T) {
	d := NewDirectory()
	all := d.All()

	require.Len(t, all, 6)
	for i, doc := range all {
		assert.Equal(t, i+1, doc.ID)
	}
	assert.Equal(t, "Dr. Sarah Johnson", all[0].Name)
	assert.Equal(t, GeneralMedicine, all[5].Specialization)
}

func TestAll_ReturnsCopy(t *testing.T) {
	d := NewDirectory()
	all := d.All()
	all[0].Name = "mutated"

	assert.Equal(t, "Dr. Sarah Johnson", d.All()[0].Name)
}

func TestFilter_Cardio(t *testing.T) {
	res := NewDirectory().Filter(Query{Search: "cardio", Specialization: AllSpecializations})

	assert.Equal(t, []string{"Dr. Sarah Johnson"}, names(res.Doctors))
	assert.False(t, res.Empty())
	assert.Equal(t, "Showing 1 doctor", res.Summary())
}

func TestFilter_NoMatchIsEmpty(t *testing.T) {
	res := NewDirectory().Filter(Query{Search: "zzz", Specialization: AllSpecializations})

	assert.True(t, res.Empty())
	assert.Equal(t, 0, res.Count())
	assert.Equal(t, "Showing 0 doctors", res.Summary())
}

func TestFilter_ClearRestoresAll(t *testing.T) {
	d := NewDirectory()
	q := Query{Search: "zzz", Specialization: string(Neurology)}
	require.True(t, d.Filter(q).Empty())

	q.Clear()

	assert.Equal(t, "", q.Search)
	assert.Equal(t, AllSpecializations, q.Specialization)
	assert.True(t, q.IsDefault())
	res := d.Filter(q)
	assert.Equal(t, 6, res.Count())
	assert.Equal(t, "Showing 6 doctors", res.Summary())
}

func TestFilter_CaseInsensitiveName(t *testing.T) {
	res := NewDirectory().Filter(Query{Search: "DR. M", Specialization: AllSpecializations})

	assert.Equal(t, []string{"Dr. Michael Chen"}, names(res.Doctors))
}

func TestFilter_SpecializationOnly(t *testing.T) {
	res := NewDirectory().Filter(Query{Specialization: string(Pediatrics)})

	assert.Equal(t, []string{"Dr. Emily Rodriguez"}, names(res.Doctors))
}

func TestFilter_SearchAndSpecializationMustBothMatch(t *testing.T) {
	res := NewDirectory().Filter(Query{Search: "johnson", Specialization: string(Dermatology)})

	assert.True(t, res.Empty())
}

func TestFilter_EmptySpecializationMeansAll(t *testing.T) {
	res := NewDirectory().Filter(Query{Search: "dr."})

	assert.Equal(t, 6, res.Count())
	assert.Equal(t, AllSpecializations, res.Query.Specialization)
}

func TestFilter_UnknownSpecializationMatchesNothing(t *testing.T) {
	res := NewDirectory().Filter(Query{Specialization: string(Psychiatry)})

	assert.True(t, res.Empty())
}

// The filter must equal a brute-force evaluation of the matching rule and
// keep source order, for every combination of sample queries and filters.
func TestFilter_MatchesDefinition(t *testing.T) {
	d := NewDirectory()
	searches := []string{"", "dr", "cardio", "CHEN", "ology", "medicine", "o", " ", "zzz", "Dr. Robert Kim"}
	filters := []string{AllSpecializations}
	for _, opt := range FilterOptions()[1:] {
		filters = append(filters, opt.Value)
	}

	for _, s := range searches {
		for _, f := range filters {
			var want []Doctor
			for _, doc := range d.All() {
				text := strings.Contains(strings.ToLower(doc.Name), strings.ToLower(s)) ||
					strings.Contains(strings.ToLower(string(doc.Specialization)), strings.ToLower(s))
				spec := f == AllSpecializations || string(doc.Specialization) == f
				if text && spec {
					want = append(want, doc)
				}
			}
			got := d.Filter(Query{Search: s, Specialization: f}).Doctors
			assert.Equal(t, names(want), names(got), "search=%q specialization=%q", s, f)
		}
	}
}

func TestGet(t *testing.T) {
	d := NewDirectory()

	doc, err := d.Get(4)
	require.NoError(t, err)
	assert.Equal(t, "Dr. James Wilson", doc.Name)

	_, err = d.Get(42)
	assert.True(t, errors.Is(err, ErrDoctorNotFound))
}

func TestFilterOptions(t *testing.T) {
	opts := FilterOptions()

	require.Len(t, opts, 7)
	assert.Equal(t, FilterOption{Value: "all", Label: "All Specializations"}, opts[0])
	assert.Equal(t, "General Medicine", opts[1].Value)
}

func TestBookingSpecializations(t *testing.T) {
	specs := BookingSpecializations()

	require.Len(t, specs, 8)
	assert.Contains(t, specs, Gynecology)
	assert.Contains(t, specs, Psychiatry)
}

func TestTalkMessage(t *testing.T) {
	doc, err := NewDirectory().Get(2)
	require.NoError(t, err)

	assert.Equal(t, "Connecting you with Dr. Michael Chen... This feature will be available soon!", TalkMessage(doc))
}
