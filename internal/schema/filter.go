package schema

// Selection names at most one entity per kind for exact-match filtering.
// Kinds are disjoint, so multiple set fields union cleanly.
type Selection struct {
	Table string
	Type  string
	Enum  string
}

// Empty reports whether no filter is set.
func (s Selection) Empty() bool {
	return s.Table == "" && s.Type == "" && s.Enum == ""
}

// Filter returns a new model containing the union of the entities named
// by sel. Names match exactly and case-sensitively against their own
// kind's mapping. A name with no match contributes nothing; filtering is
// a query, not an assertion, so the result may be empty.
func Filter(m *Model, sel Selection) *Model {
	out := NewModel()
	if sel.Table != "" {
		if t, ok := m.Tables[sel.Table]; ok {
			out.Tables[t.Name] = t
		}
	}
	if sel.Type != "" {
		if s, ok := m.Structs[sel.Type]; ok {
			out.Structs[s.Name] = s
		}
	}
	if sel.Enum != "" {
		if e, ok := m.Enums[sel.Enum]; ok {
			out.Enums[e.Name] = e
		}
	}
	return out
}

// FilterTable narrows m to the single named table.
func FilterTable(m *Model, name string) *Model {
	return Filter(m, Selection{Table: name})
}

// FilterType narrows m to the single named struct.
func FilterType(m *Model, name string) *Model {
	return Filter(m, Selection{Type: name})
}

// FilterEnum narrows m to the single named enum.
func FilterEnum(m *Model, name string) *Model {
	return Filter(m, Selection{Enum: name})
}
