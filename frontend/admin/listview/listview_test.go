package listview

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"testing"
)

type row struct {
	id     string
	name   string
	group  string
	hidden bool
}

func (r row) RecordID() string { return r.id }

func testConfig() Config[row] {
	return Config[row]{
		SearchFields: func(r row) []string { return []string{r.name} },
		Filters: map[string]func(row) string{
			"group": func(r row) string { return r.group },
		},
		Comparators: map[string]func(a, b row) int{
			"name": func(a, b row) int { return CompareFold(a.name, b.name) },
		},
		Default: func(a, b row) int { return CompareFold(a.id, b.id) },
		Exclude: func(r row) bool { return r.hidden },
	}
}

func rows(n int) []row {
	out := make([]row, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, row{id: fmt.Sprintf("id-%03d", i), name: fmt.Sprintf("name-%03d", i), group: "a"})
	}
	return out
}

func TestExcludedRecordsNeverVisible(t *testing.T) {
	cfg := testConfig()
	records := []row{
		{id: "1", name: "visible", group: "a"},
		{id: "2", name: "hidden", group: "a", hidden: true},
	}

	states := []State{
		DefaultState(),
		{Query: "hidden", Filters: map[string]string{}, SortDir: DirAsc, Page: 1},
		{Filters: map[string]string{"group": "a"}, SortDir: DirAsc, Page: 1},
	}
	for _, s := range states {
		for _, rec := range Apply(cfg, s, records).Items {
			if rec.id == "2" {
				t.Fatalf("excluded record surfaced with state %+v", s)
			}
		}
	}
}

func TestSearchMatchesCaseInsensitiveSubstring(t *testing.T) {
	cfg := testConfig()
	records := []row{
		{id: "1", name: "Amy Pond", group: "a"},
		{id: "2", name: "SAMYA", group: "a"},
		{id: "3", name: "Rory", group: "a"},
	}

	s := DefaultState()
	s.Query = "amy"
	got := Derive(cfg, s, records)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", s.Query, len(got))
	}
	for _, rec := range got {
		if rec.id == "3" {
			t.Fatalf("non-matching record included")
		}
	}
}

func TestFilterAllMatchesEverything(t *testing.T) {
	cfg := testConfig()
	records := []row{
		{id: "1", name: "a", group: "x"},
		{id: "2", name: "b", group: "y"},
	}

	s := DefaultState()
	s.Filters["group"] = FilterAll
	if got := Derive(cfg, s, records); len(got) != 2 {
		t.Fatalf("expected filter %q to match all, got %d", FilterAll, len(got))
	}

	s.Filters["group"] = "y"
	got := Derive(cfg, s, records)
	if len(got) != 1 || got[0].id != "2" {
		t.Fatalf("expected only group y, got %+v", got)
	}
}

func TestSortToggleRoundTrip(t *testing.T) {
	cfg := testConfig()
	records := []row{
		{id: "1", name: "carol"},
		{id: "2", name: "alice"},
		{id: "3", name: "bob"},
	}

	s := NextSort(DefaultState(), "name")
	asc := Derive(cfg, s, records)

	s = NextSort(s, "name")
	if s.SortDir != DirDesc {
		t.Fatalf("expected second toggle to flip to desc, got %s", s.SortDir)
	}
	desc := Derive(cfg, s, records)

	for i := range asc {
		if asc[i].id != desc[len(desc)-1-i].id {
			t.Fatalf("desc is not the reverse of asc: %+v vs %+v", asc, desc)
		}
	}
}

func TestStableSortKeepsTiedOrder(t *testing.T) {
	cfg := testConfig()
	records := []row{
		{id: "z-first", name: "same"},
		{id: "a-second", name: "same"},
		{id: "m-third", name: "same"},
	}

	s := NextSort(DefaultState(), "name")
	got := Derive(cfg, s, records)
	want := []string{"z-first", "a-second", "m-third"}
	for i, rec := range got {
		if rec.id != want[i] {
			t.Fatalf("tied records reordered: got %v at %d, want %v", rec.id, i, want[i])
		}
	}
}

func TestUnknownSortKeyFallsBackToDefault(t *testing.T) {
	cfg := testConfig()
	records := []row{
		{id: "b", name: "2"},
		{id: "a", name: "1"},
	}

	s := DefaultState()
	s.SortKey = "nonsense"
	got := Derive(cfg, s, records)
	if got[0].id != "a" || got[1].id != "b" {
		t.Fatalf("expected default ordering for unknown sort key, got %+v", got)
	}
}

func TestPaginationPartitionsExactly(t *testing.T) {
	cfg := testConfig()
	records := rows(25)

	s := DefaultState()
	full := Derive(cfg, s, records)

	first := Apply(cfg, s, records)
	if first.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25 records, got %d", first.TotalPages)
	}

	var concat []row
	seen := make(map[string]bool)
	for page := 1; page <= first.TotalPages; page++ {
		s.Page = page
		v := Apply(cfg, s, records)
		for _, rec := range v.Items {
			if seen[rec.id] {
				t.Fatalf("record %s appeared on more than one page", rec.id)
			}
			seen[rec.id] = true
		}
		concat = append(concat, v.Items...)
	}
	if !reflect.DeepEqual(concat, full) {
		t.Fatalf("concatenated pages differ from filtered+sorted sequence")
	}
	if len(Apply(cfg, State{Filters: map[string]string{}, SortDir: DirAsc, Page: 3}, records).Items) != 5 {
		t.Fatalf("expected last page to hold the 5 remaining records")
	}
}

func TestEmptyResultStillHasOnePage(t *testing.T) {
	cfg := testConfig()
	s := DefaultState()
	s.Query = "no-such-record"
	v := Apply(cfg, s, rows(25))
	if v.TotalPages != 1 || v.Page != 1 || len(v.Items) != 0 {
		t.Fatalf("expected empty single page, got %+v", v)
	}
	if v.HasPrev || v.HasNext {
		t.Fatalf("empty view must not offer prev/next")
	}
}

func TestOutOfRangePageClamps(t *testing.T) {
	cfg := testConfig()
	s := DefaultState()
	s.Page = 99
	v := Apply(cfg, s, rows(25))
	if v.Page != 3 {
		t.Fatalf("expected page clamped to 3, got %d", v.Page)
	}
	if len(v.Items) != 5 {
		t.Fatalf("expected clamped page items, got %d", len(v.Items))
	}
}

func TestParseStateDefaultsAndUserSortedFlag(t *testing.T) {
	s := ParseState(url.Values{}, []string{"group"})
	if s.Query != "" || s.SortKey != "" || s.SortDir != DirAsc || s.Page != 1 || s.UserSorted {
		t.Fatalf("unexpected default state: %+v", s)
	}

	s = ParseState(url.Values{
		"q":     {" amy "},
		"group": {"x"},
		"sort":  {"name"},
		"dir":   {"desc"},
		"page":  {"2"},
	}, []string{"group"})
	if s.Query != "amy" || s.Filters["group"] != "x" || s.SortKey != "name" || s.SortDir != DirDesc || s.Page != 2 {
		t.Fatalf("unexpected parsed state: %+v", s)
	}
	if !s.UserSorted {
		t.Fatalf("explicit sort must set UserSorted")
	}

	if got := ResetSort(s); got.SortKey != "" || got.UserSorted || got.Page != 1 {
		t.Fatalf("reset sort must clear sort state: %+v", got)
	}
}

func TestPageIDsMatchVisibleItems(t *testing.T) {
	cfg := testConfig()
	s := DefaultState()
	s.Page = 3
	v := Apply(cfg, s, rows(25))

	ids := v.PageIDs()
	if len(ids) != len(v.Items) {
		t.Fatalf("expected %d page ids, got %d", len(v.Items), len(ids))
	}
	for i, rec := range v.Items {
		if ids[i] != rec.RecordID() {
			t.Fatalf("page id %d mismatch: %q vs %q", i, ids[i], rec.RecordID())
		}
	}

	// Select-all over the visible page uses exactly these ids.
	sel := NewSelection("stale-id")
	sel.ToggleAllVisible(ids)
	got := sel.IDs()
	sort.Strings(got)
	want := append([]string(nil), ids...)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected selection to hold the page ids, got %v", got)
	}
}

func TestSelectionToggleAllVisible(t *testing.T) {
	sel := NewSelection("other-page-id", "p1")
	page := []string{"p1", "p2", "p3"}

	// Not all visible selected: replace with exactly the visible ids.
	sel.ToggleAllVisible(page)
	got := sel.IDs()
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"p1", "p2", "p3"}) {
		t.Fatalf("expected selection replaced with page ids, got %v", got)
	}

	// All visible selected: clear.
	sel.ToggleAllVisible(page)
	if len(sel) != 0 {
		t.Fatalf("expected selection cleared, got %v", sel.IDs())
	}
}

func TestSelectionToggleSymmetric(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("a")
	if !sel.Has("a") {
		t.Fatalf("expected a selected")
	}
	sel.Toggle("a")
	if sel.Has("a") {
		t.Fatalf("expected a deselected")
	}
}

func TestDeleteManyReturnsPerIDOutcomes(t *testing.T) {
	boom := errors.New("store down")
	del := func(_ context.Context, id string) error {
		if id == "bad" {
			return boom
		}
		return nil
	}

	outcomes := DeleteMany(context.Background(), del, []string{"ok-1", "bad", "ok-2"})
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].ID != "ok-1" || outcomes[0].Err != nil {
		t.Fatalf("unexpected outcome[0]: %+v", outcomes[0])
	}
	if outcomes[1].ID != "bad" || !errors.Is(outcomes[1].Err, boom) {
		t.Fatalf("unexpected outcome[1]: %+v", outcomes[1])
	}
	failed := FailedIDs(outcomes)
	if len(failed) != 1 || failed[0] != "bad" {
		t.Fatalf("unexpected failed ids: %v", failed)
	}
}
