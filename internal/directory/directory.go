// Package directory derives the visible worker list from a fetched roster:
// substring search, category filter and locale-aware ordering.
package directory

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllCategories is the category chip that disables category filtering.
const AllCategories = "كل الفئات"

// SortKey selects the field the list is ordered by.
type SortKey string

const (
	SortByName SortKey = "name"
	SortByCity SortKey = "city"
)

// Next toggles between the two orderings.
func (k SortKey) Next() SortKey {
	if k == SortByCity {
		return SortByName
	}
	return SortByCity
}

// ParseSortKey accepts "name" or "city"; anything else falls back to name.
func ParseSortKey(s string) SortKey {
	if SortKey(strings.ToLower(strings.TrimSpace(s))) == SortByCity {
		return SortByCity
	}
	return SortByName
}

// Comparer orders two strings; *collate.Collator satisfies it.
type Comparer interface {
	CompareString(a, b string) int
}

// NewCollator returns a collator for a BCP 47 locale such as "ar".
func NewCollator(locale string) (*collate.Collator, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return collate.New(tag), nil
}

// Query is the user's current view of the roster.
type Query struct {
	Search   string
	Category string
	Sort     SortKey
	// OnlyIDs restricts the result to these worker ids when non-nil.
	OnlyIDs map[string]bool
}

// Categories lists the category chips: the "all" sentinel followed by each
// distinct category in order of first appearance.
func Categories(workers []Worker) []string {
	out := []string{AllCategories}
	seen := make(map[string]struct{}, len(workers))
	for _, w := range workers {
		if _, ok := seen[w.Category]; ok {
			continue
		}
		seen[w.Category] = struct{}{}
		out = append(out, w.Category)
	}
	return out
}

// Matches reports whether the worker's name, category or city contains
// search, ignoring case. An empty search matches everything.
func Matches(w Worker, search string) bool {
	return strings.Contains(w.searchText(), strings.ToLower(search))
}

func matchesCategory(w Worker, category string) bool {
	return category == "" || category == AllCategories || w.Category == category
}

// Apply filters and orders workers according to q. The input slice is left
// untouched. A nil cmp falls back to byte-wise comparison.
func Apply(workers []Worker, q Query, cmp Comparer) []Worker {
	out := make([]Worker, 0, len(workers))
	for _, w := range workers {
		if !Matches(w, q.Search) || !matchesCategory(w, q.Category) {
			continue
		}
		if q.OnlyIDs != nil && !q.OnlyIDs[w.ID] {
			continue
		}
		out = append(out, w)
	}

	field := sortField(q.Sort)
	if field == nil {
		return out
	}
	compare := strings.Compare
	if cmp != nil {
		compare = cmp.CompareString
	}
	sort.SliceStable(out, func(i, j int) bool {
		return compare(field(out[i]), field(out[j])) < 0
	})
	return out
}

func sortField(k SortKey) func(Worker) string {
	switch k {
	case SortByName:
		return func(w Worker) string { return w.LastName }
	case SortByCity:
		return func(w Worker) string { return w.City }
	default:
		return nil
	}
}

// Suggest proposes the roster term closest to a search that matched nothing.
// Terms are names, categories and cities (whole and per word); a term is
// only offered when its edit distance is within a third of the search length.
func Suggest(workers []Worker, search string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return "", false
	}
	limit := utf8.RuneCountInString(needle) / 3
	if limit < 1 {
		limit = 1
	}

	best, bestDist := "", limit+1
	seen := map[string]struct{}{}
	consider := func(term string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		d := levenshtein.ComputeDistance(needle, term)
		if d > 0 && d < bestDist {
			best, bestDist = term, d
		}
	}
	for _, w := range workers {
		for _, field := range []string{w.FirstName, w.LastName, w.Category, w.City} {
			consider(field)
			for _, word := range strings.Fields(field) {
				consider(word)
			}
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
