package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spacelens/spacelens/internal/schema"
)

// NoMatchesLine is emitted when the model holds nothing to render.
const NoMatchesLine = "no matching entities"

// Text writes the hierarchical text view of m. Output is deterministic:
// tables first, then structs, then enums, entities sorted by name within
// each kind. Member order inside an entity stays as declared, mirroring
// the source schema's layout.
func Text(w io.Writer, m *schema.Model, p Palette) error {
	var b strings.Builder

	if m.Empty() {
		b.WriteString(NoMatchesLine + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if len(m.Tables) > 0 {
		fmt.Fprintf(&b, "%s %s\n",
			p.paint(RoleHeader, "TABLES"),
			p.paint(RoleAnnotation, fmt.Sprintf("(%d)", len(m.Tables))))
		for _, name := range sortedKeys(m.Tables) {
			writeTable(&b, m.Tables[name], p)
		}
	}

	if len(m.Structs) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s\n",
			p.paint(RoleHeader, "STRUCTS"),
			p.paint(RoleAnnotation, fmt.Sprintf("(%d)", len(m.Structs))))
		for _, name := range sortedKeys(m.Structs) {
			writeStruct(&b, m.Structs[name], p)
		}
	}

	if len(m.Enums) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s\n",
			p.paint(RoleHeader, "ENUMS"),
			p.paint(RoleAnnotation, fmt.Sprintf("(%d)", len(m.Enums))))
		for _, name := range sortedKeys(m.Enums) {
			writeEnum(&b, m.Enums[name], p)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, t schema.Table, p Palette) {
	fmt.Fprintf(b, "  %s %s\n",
		p.paint(RoleEntity, t.Name),
		p.paint(RoleAnnotation, fmt.Sprintf("(%d fields)", len(t.Fields))))
	writeFields(b, t.Fields, p)
	if len(t.PrimaryKey) > 0 {
		fmt.Fprintf(b, "    %s\n",
			p.paint(RoleAnnotation, "primary key: "+pkNames(t)))
	}
}

func writeStruct(b *strings.Builder, s schema.Struct, p Palette) {
	if s.Special != "" {
		fmt.Fprintf(b, "  %s %s\n",
			p.paint(RoleEntity, s.Name),
			p.paint(RoleSpecial, "built-in "+s.Special))
		return
	}
	fmt.Fprintf(b, "  %s %s\n",
		p.paint(RoleEntity, s.Name),
		p.paint(RoleAnnotation, fmt.Sprintf("(%d fields)", len(s.Fields))))
	writeFields(b, s.Fields, p)
}

func writeEnum(b *strings.Builder, e schema.Enum, p Palette) {
	if e.Special != "" {
		fmt.Fprintf(b, "  %s %s\n",
			p.paint(RoleEntity, e.Name),
			p.paint(RoleSpecial, "built-in "+e.Special))
		return
	}
	fmt.Fprintf(b, "  %s %s\n",
		p.paint(RoleEntity, e.Name),
		p.paint(RoleAnnotation, fmt.Sprintf("(%d variants)", len(e.Variants))))
	for _, v := range e.Variants {
		if v.Payload == nil {
			fmt.Fprintf(b, "    %s\n", v.Name)
		} else {
			fmt.Fprintf(b, "    %s(%s)%s\n", v.Name, phrase(*v.Payload, p), warning(v.Warning, p))
		}
	}
}

func writeFields(b *strings.Builder, fields []schema.Field, p Palette) {
	for _, f := range fields {
		fmt.Fprintf(b, "    %s: %s%s\n", f.Name, phrase(f.Type, p), warning(f.Warning, p))
	}
}

// phrase renders a type as one composed human-readable phrase, unwrapping
// wrappers outer-to-inner: Optional(Sequence(Identity)) reads
// "optional sequence of Identity".
func phrase(n schema.TypeNode, p Palette) string {
	switch n.Kind {
	case schema.KindOptional:
		return "optional " + elemPhrase(n.Elem, p)
	case schema.KindSequence:
		return "sequence of " + elemPhrase(n.Elem, p)
	case schema.KindPrimitive:
		return p.paint(RolePrimitive, n.Name)
	case schema.KindSpecial:
		return p.paint(RoleSpecial, n.Name)
	case schema.KindReference:
		// Bare name only; references are never expanded inline.
		return p.paint(RoleReference, n.Name)
	}
	return n.Name
}

func elemPhrase(n *schema.TypeNode, p Palette) string {
	if n == nil {
		return p.paint(RolePrimitive, "unknown")
	}
	return phrase(*n, p)
}

func warning(w string, p Palette) string {
	if w == "" {
		return ""
	}
	return "  " + p.paint(RoleAnnotation, "["+w+"]")
}

// pkNames maps primary-key field ordinals back to field names.
func pkNames(t schema.Table) string {
	names := make([]string, 0, len(t.PrimaryKey))
	for _, i := range t.PrimaryKey {
		if i >= 0 && i < len(t.Fields) {
			names = append(names, t.Fields[i].Name)
		} else {
			names = append(names, fmt.Sprintf("#%d", i))
		}
	}
	return strings.Join(names, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
