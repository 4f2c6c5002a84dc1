package listview

// Selection is a set of selected record identifiers.
type Selection map[string]struct{}

func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle adds the id when absent and removes it when present.
func (s Selection) Toggle(id string) {
	if s.Has(id) {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

func (s Selection) Remove(id string) {
	delete(s, id)
}

// ToggleAllVisible clears the selection when every visible id is already
// selected; otherwise it replaces the selection with exactly the visible ids.
// Selection is page-scoped: ids from other pages never survive a select-all.
func (s Selection) ToggleAllVisible(visibleIDs []string) {
	all := len(visibleIDs) > 0
	for _, id := range visibleIDs {
		if !s.Has(id) {
			all = false
			break
		}
	}

	for id := range s {
		delete(s, id)
	}
	if all {
		return
	}
	for _, id := range visibleIDs {
		s[id] = struct{}{}
	}
}

func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
