package models

// Selection is either every current item (All) or an explicit, ordered id
// set. All may carry exclusions added by Deselect. Resolve is the only way to
// turn a Selection into concrete ids.
type Selection struct {
	all   bool
	ids   map[string]struct{}
	order []string
}

func AllSelection() Selection {
	return Selection{all: true, ids: map[string]struct{}{}}
}

func ExplicitSelection(ids ...string) Selection {
	s := Selection{ids: map[string]struct{}{}}
	s.Select(ids...)
	return s
}

func (s *Selection) SelectAll() {
	s.all = true
	s.ids = map[string]struct{}{}
	s.order = nil
}

// Select adds ids to an explicit selection. On All it removes the ids from
// the exclusion list. Re-selecting an id keeps its first position.
func (s *Selection) Select(ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if s.all {
			s.remove(id)
		} else {
			s.add(id)
		}
	}
}

// Deselect removes ids from an explicit selection. On All it excludes them.
func (s *Selection) Deselect(ids ...string) {
	for _, id := range ids {
		if s.all {
			s.add(id)
		} else {
			s.remove(id)
		}
	}
}

func (s *Selection) Clear() {
	s.all = false
	s.ids = map[string]struct{}{}
	s.order = nil
}

func (s *Selection) add(id string) {
	if s.ids == nil {
		s.ids = map[string]struct{}{}
	}
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) remove(id string) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	kept := make([]string, 0, len(s.order)-1)
	for _, v := range s.order {
		if v != id {
			kept = append(kept, v)
		}
	}
	s.order = kept
}

func (s Selection) IsAll() bool { return s.all }

func (s Selection) IsEmpty() bool { return !s.all && len(s.ids) == 0 }

// IDs returns the explicit ids, or the exclusions of All, in the order they
// were added.
func (s Selection) IDs() []string {
	return append([]string(nil), s.order...)
}

// Resolve materializes the selection against the current item list.
// All yields current (minus exclusions, order kept); Explicit yields its ids
// in selection order.
func (s Selection) Resolve(current []string) []string {
	if !s.all {
		return s.IDs()
	}
	out := make([]string, 0, len(current))
	seen := make(map[string]struct{}, len(current))
	for _, id := range current {
		if _, excluded := s.ids[id]; excluded {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
