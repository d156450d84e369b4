package directory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleWorkers() []Worker {
	return []Worker{
		{ID: "1", FirstName: "يوسف", LastName: "بناني", Category: "سباك", City: "فاس"},
		{ID: "2", FirstName: "أمين", LastName: "العلوي", Category: "كهربائي", City: "الرباط"},
		{ID: "3", FirstName: "سعيد", LastName: "تازي", Category: "سباك", City: "الدار البيضاء"},
		{ID: "4", FirstName: "Karim", LastName: "Idrissi", Category: "نجار", City: "Tanger"},
	}
}

func ids(ws []Worker) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.ID)
	}
	return out
}

func TestCategoriesSentinelFirstThenFirstAppearance(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{AllCategories}, Categories(nil))
	require.Equal(t, []string{AllCategories, "سباك", "كهربائي", "نجار"}, Categories(sampleWorkers()))
}

func TestMatchesSearchesNameCategoryAndCity(t *testing.T) {
	t.Parallel()

	w := sampleWorkers()[3]
	require.True(t, Matches(w, ""))
	require.True(t, Matches(w, "karim"))
	require.True(t, Matches(w, "KARIM IDR"))
	require.True(t, Matches(w, "tang"))
	require.True(t, Matches(w, "نجار"))
	require.False(t, Matches(w, "فاس"))
	// the joined haystack is "first last category city", so a term that
	// straddles two fields still matches
	require.True(t, Matches(w, "idrissi نجار"))
}

func TestApplyFiltersBySearchAndCategory(t *testing.T) {
	t.Parallel()

	ws := sampleWorkers()

	got := Apply(ws, Query{Category: "سباك"}, nil)
	require.ElementsMatch(t, []string{"1", "3"}, ids(got))

	got = Apply(ws, Query{Category: "سباك", Search: "فاس"}, nil)
	require.Equal(t, []string{"1"}, ids(got))

	got = Apply(ws, Query{Category: AllCategories, Search: "الرباط"}, nil)
	require.Equal(t, []string{"2"}, ids(got))

	got = Apply(ws, Query{Search: "nobody"}, nil)
	require.Empty(t, got)
}

func TestApplyOnlyIDs(t *testing.T) {
	t.Parallel()

	got := Apply(sampleWorkers(), Query{OnlyIDs: map[string]bool{"2": true, "4": true}}, nil)
	require.ElementsMatch(t, []string{"2", "4"}, ids(got))

	got = Apply(sampleWorkers(), Query{OnlyIDs: map[string]bool{}}, nil)
	require.Empty(t, got)
}

func TestApplySortTogglesOrdering(t *testing.T) {
	t.Parallel()

	coll, err := NewCollator("ar")
	require.NoError(t, err)

	ws := []Worker{
		{ID: "a", LastName: "تازي", City: "أكادير"},
		{ID: "b", LastName: "بناني", City: "وجدة"},
		{ID: "c", LastName: "أوزين", City: "مراكش"},
	}

	byName := Apply(ws, Query{Sort: SortByName}, coll)
	require.Equal(t, []string{"c", "b", "a"}, ids(byName))

	byCity := Apply(ws, Query{Sort: SortByCity}, coll)
	require.Equal(t, []string{"a", "c", "b"}, ids(byCity))

	// input order is preserved
	require.Equal(t, []string{"a", "b", "c"}, ids(ws))
}

func TestApplyUsesCollatorNotBytes(t *testing.T) {
	t.Parallel()

	coll, err := NewCollator("ar")
	require.NoError(t, err)

	ws := []Worker{
		{ID: "1", LastName: "banani"},
		{ID: "2", LastName: "Alaoui"},
		{ID: "3", LastName: "Chraibi"},
	}
	require.Equal(t, []string{"2", "1", "3"}, ids(Apply(ws, Query{Sort: SortByName}, coll)))
	// byte order puts upper case first
	require.Equal(t, []string{"2", "3", "1"}, ids(Apply(ws, Query{Sort: SortByName}, nil)))
}

func TestApplyUnknownSortKeepsFetchOrder(t *testing.T) {
	t.Parallel()

	got := Apply(sampleWorkers(), Query{Sort: "rating"}, nil)
	require.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestSortKeyNextAndParse(t *testing.T) {
	t.Parallel()

	require.Equal(t, SortByCity, SortByName.Next())
	require.Equal(t, SortByName, SortByCity.Next())
	require.Equal(t, SortByCity, ParseSortKey(" City "))
	require.Equal(t, SortByName, ParseSortKey("rating"))
}

func TestNewCollatorRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := NewCollator("not a locale!")
	require.Error(t, err)
}

func TestSuggestClosestTerm(t *testing.T) {
	t.Parallel()

	ws := sampleWorkers()

	got, ok := Suggest(ws, "tnager")
	require.True(t, ok)
	require.Equal(t, "tanger", got)

	got, ok = Suggest(ws, "كهرباي")
	require.True(t, ok)
	require.Equal(t, "كهربائي", got)

	_, ok = Suggest(ws, "zzzzzzzz")
	require.False(t, ok)

	_, ok = Suggest(ws, "  ")
	require.False(t, ok)
}

func TestWorkerJSONDecoding(t *testing.T) {
	t.Parallel()

	payload := `[
		{"id":"W1","first_name":"يوسف","last_name":"بناني","category":"سباك","city":"فاس",
		 "rating":"4.5","phone":"0600000000","whatsapp_number":null,"bio":"خبرة","image":"http://x/1.jpg"},
		{"id":"W2","first_name":"a","last_name":"b","category":"c","city":"d","rating":3}
	]`
	var ws []Worker
	require.NoError(t, json.Unmarshal([]byte(payload), &ws))
	require.Len(t, ws, 2)

	require.Equal(t, "يوسف بناني", ws[0].FullName())
	require.True(t, ws[0].Rating.Valid)
	require.InDelta(t, 4.5, ws[0].Rating.Value, 1e-9)
	require.Nil(t, ws[0].WhatsApp)
	require.Equal(t, "http://x/1.jpg", ws[0].Image)

	require.Equal(t, "3.0", ws[1].Rating.String())

	var missing Worker
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","rating":null}`), &missing))
	require.False(t, missing.Rating.Valid)
	require.Equal(t, "-", missing.Rating.String())

	require.Error(t, json.Unmarshal([]byte(`{"rating":"high"}`), &missing))
}

func TestRatingEncoding(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Rating{Value: 4, Valid: true})
	require.NoError(t, err)
	require.JSONEq(t, `"4.0"`, string(out))

	out, err = json.Marshal(Rating{})
	require.NoError(t, err)
	require.Equal(t, "null", string(out))

	var r Rating
	require.NoError(t, json.Unmarshal([]byte(`""`), &r))
	require.False(t, r.Valid)
	require.NoError(t, json.Unmarshal([]byte(`3.5`), &r))
	require.Equal(t, "3.5", r.String())
	require.Error(t, json.Unmarshal([]byte(`"abc"`), &r))
}
