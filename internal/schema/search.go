package schema

import "strings"

// Search returns a new model holding every entity whose name, member
// names, or member leaf type names contain pattern, case-insensitively.
// A matching member pulls in its whole entity: a struct shown without its
// non-matching fields would lose the structural context the tool exists
// to show. An empty pattern matches everything.
func Search(m *Model, pattern string) *Model {
	p := strings.ToLower(pattern)

	out := NewModel()
	for name, t := range m.Tables {
		if matchName(name, p) || matchFields(t.Fields, p) {
			out.Tables[name] = t
		}
	}
	for name, s := range m.Structs {
		if matchName(name, p) || matchFields(s.Fields, p) || matchName(s.Special, p) {
			out.Structs[name] = s
		}
	}
	for name, e := range m.Enums {
		if matchName(name, p) || matchVariants(e.Variants, p) || matchName(e.Special, p) {
			out.Enums[name] = e
		}
	}
	return out
}

func matchName(name, pattern string) bool {
	return name != "" && strings.Contains(strings.ToLower(name), pattern)
}

func matchFields(fields []Field, pattern string) bool {
	for _, f := range fields {
		if matchName(f.Name, pattern) || matchName(f.Type.Leaf(), pattern) {
			return true
		}
	}
	return false
}

func matchVariants(variants []Variant, pattern string) bool {
	for _, v := range variants {
		if matchName(v.Name, pattern) {
			return true
		}
		if v.Payload != nil && matchName(v.Payload.Leaf(), pattern) {
			return true
		}
	}
	return false
}
