// Package listview derives table views (search, filter, sort, paginate) from
// an in-memory snapshot of records. The derivation is a pure function of the
// record slice and the request state, so repeated requests with the same
// inputs render the same page.
package listview

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const PageSize = 10

const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// FilterAll is the filter value that matches every record.
const FilterAll = "all"

// Record is any row with a stable opaque identifier.
type Record interface {
	RecordID() string
}

// Config describes how one entity type is searched, filtered and ordered.
type Config[T Record] struct {
	// SearchFields returns the values matched against the search query.
	SearchFields func(T) []string
	// Filters maps a filter key to the record field it constrains.
	Filters map[string]func(T) string
	// Comparators maps a sort key to an ordering (-1/0/1).
	Comparators map[string]func(a, b T) int
	// Default orders records when no explicit sort is active.
	Default func(a, b T) int
	// Exclude hides records from every derived view.
	Exclude func(T) bool
}

// State is the per-request view state, parsed from query parameters.
type State struct {
	Query      string
	Filters    map[string]string
	SortKey    string
	SortDir    string
	Page       int
	UserSorted bool
}

// DefaultState returns the initial view state: no query, all filters open,
// default ordering, first page.
func DefaultState() State {
	return State{
		Filters: make(map[string]string),
		SortDir: DirAsc,
		Page:    1,
	}
}

// ParseState reads view state from query parameters. Any change to query,
// filters or sort arrives as a fresh URL with page reset by the form, so an
// out-of-range page can only come from a stale link and is clamped in Apply.
func ParseState(q url.Values, filterKeys []string) State {
	s := DefaultState()
	s.Query = strings.TrimSpace(q.Get("q"))
	for _, key := range filterKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			s.Filters[key] = v
		}
	}
	s.SortKey = strings.TrimSpace(q.Get("sort"))
	if q.Get("dir") == DirDesc {
		s.SortDir = DirDesc
	}
	s.UserSorted = s.SortKey != ""
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		s.Page = p
	}
	return s
}

// NextSort returns the state after clicking a column header: same field flips
// direction, a new field sorts ascending.
func NextSort(s State, field string) State {
	if s.SortKey == field {
		if s.SortDir == DirAsc {
			s.SortDir = DirDesc
		} else {
			s.SortDir = DirAsc
		}
	} else {
		s.SortKey = field
		s.SortDir = DirAsc
	}
	s.UserSorted = true
	s.Page = 1
	return s
}

// ResetSort restores the default ordering.
func ResetSort(s State) State {
	s.SortKey = ""
	s.SortDir = DirAsc
	s.UserSorted = false
	s.Page = 1
	return s
}

// View is one derived page plus pagination metadata.
type View[T Record] struct {
	Items         []T
	FilteredCount int
	Page          int
	TotalPages    int
	HasPrev       bool
	HasNext       bool
	PrevPage      int
	NextPage      int
}

// Apply derives one page from the full record snapshot.
func Apply[T Record](cfg Config[T], s State, records []T) View[T] {
	filtered := Derive(cfg, s, records)

	totalPages := (len(filtered) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := s.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	prev := page - 1
	if prev < 1 {
		prev = 1
	}
	next := page + 1
	if next > totalPages {
		next = totalPages
	}

	return View[T]{
		Items:         filtered[start:end],
		FilteredCount: len(filtered),
		Page:          page,
		TotalPages:    totalPages,
		HasPrev:       page > 1,
		HasNext:       page < totalPages,
		PrevPage:      prev,
		NextPage:      next,
	}
}

// Derive filters and sorts the full snapshot without paginating.
// Concatenating all pages of Apply reproduces exactly this sequence.
func Derive[T Record](cfg Config[T], s State, records []T) []T {
	query := strings.ToLower(s.Query)

	filtered := make([]T, 0, len(records))
	for _, rec := range records {
		if cfg.Exclude != nil && cfg.Exclude(rec) {
			continue
		}
		if !matchesQuery(cfg, query, rec) {
			continue
		}
		if !matchesFilters(cfg, s.Filters, rec) {
			continue
		}
		filtered = append(filtered, rec)
	}

	cmp := cfg.Default
	if s.SortKey != "" {
		if c, ok := cfg.Comparators[s.SortKey]; ok {
			cmp = c
			if s.SortDir == DirDesc {
				asc := c
				cmp = func(a, b T) int { return -asc(a, b) }
			}
		}
	}
	if cmp != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			return cmp(filtered[i], filtered[j]) < 0
		})
	}
	return filtered
}

func matchesQuery[T Record](cfg Config[T], query string, rec T) bool {
	if query == "" || cfg.SearchFields == nil {
		return true
	}
	for _, field := range cfg.SearchFields(rec) {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchesFilters[T Record](cfg Config[T], active map[string]string, rec T) bool {
	for key, want := range active {
		if want == "" || want == FilterAll {
			continue
		}
		extract, ok := cfg.Filters[key]
		if !ok {
			continue
		}
		if extract(rec) != want {
			return false
		}
	}
	return true
}

// PageIDs returns the identifiers of the records on the current page.
func (v View[T]) PageIDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, rec := range v.Items {
		ids = append(ids, rec.RecordID())
	}
	return ids
}

// CompareFold orders strings case-insensitively.
func CompareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// CompareTimes orders instants; a missing (zero) time sorts before any set time.
func CompareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
