// Package schema holds the normalized schema model and the pipeline that
// produces narrowed views of it: type resolution, filtering, and search.
//
// A Model is immutable once built. Filter and Search return new derived
// Models so the same fetched schema can be queried repeatedly.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/spacelens/spacelens/internal/errs"
)

// Kind tags a TypeNode variant. The set is closed; every consumer
// switches over all five.
type Kind int

const (
	KindPrimitive Kind = iota // scalar builtin: bool, u32, string, …
	KindSpecial               // one of the four SpacetimeDB builtins
	KindOptional              // option-shaped wrapper around Elem
	KindSequence              // array of Elem
	KindReference             // by-name pointer to another entity
)

// The four built-in special types. They are terminal like primitives but
// rendered with a distinct role.
const (
	SpecialIdentity    = "Identity"
	SpecialTimestamp   = "Timestamp"
	SpecialDuration    = "Duration"
	SpecialScheduledAt = "ScheduledAt"
)

// TypeNode is a resolved semantic type descriptor. Name carries the
// primitive name, special kind, or reference target; Elem is the single
// child of Optional and Sequence nodes and nil otherwise. References are
// never expanded in place, which keeps self- and mutually-referential
// schemas finite.
type TypeNode struct {
	Kind Kind
	Name string
	Elem *TypeNode
}

// Primitive returns a scalar node.
func Primitive(name string) TypeNode {
	return TypeNode{Kind: KindPrimitive, Name: name}
}

// Special returns a node for one of the built-in special types.
func Special(kind string) TypeNode {
	return TypeNode{Kind: KindSpecial, Name: kind}
}

// Optional wraps inner in an option node.
func Optional(inner TypeNode) TypeNode {
	return TypeNode{Kind: KindOptional, Elem: &inner}
}

// Sequence wraps inner in an array node.
func Sequence(inner TypeNode) TypeNode {
	return TypeNode{Kind: KindSequence, Elem: &inner}
}

// Reference returns a by-name pointer to another entity.
func Reference(name string) TypeNode {
	return TypeNode{Kind: KindReference, Name: name}
}

// Leaf returns the terminal name after unwrapping Optional and Sequence
// layers. Search matches declared types against this.
func (n TypeNode) Leaf() string {
	for n.Elem != nil {
		n = *n.Elem
	}
	return n.Name
}

func (n TypeNode) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case KindPrimitive:
		return json.Marshal(map[string]string{"primitive": n.Name})
	case KindSpecial:
		return json.Marshal(map[string]string{"special": n.Name})
	case KindOptional:
		return json.Marshal(map[string]*TypeNode{"optional": n.Elem})
	case KindSequence:
		return json.Marshal(map[string]*TypeNode{"sequence": n.Elem})
	case KindReference:
		return json.Marshal(map[string]string{"ref": n.Name})
	}
	return nil, fmt.Errorf("unknown type node kind %d", n.Kind)
}

func (n *TypeNode) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if len(obj) != 1 {
		return fmt.Errorf("type node must have exactly one tag, got %d", len(obj))
	}
	for tag, raw := range obj {
		switch tag {
		case "primitive":
			n.Kind = KindPrimitive
			return json.Unmarshal(raw, &n.Name)
		case "special":
			n.Kind = KindSpecial
			return json.Unmarshal(raw, &n.Name)
		case "optional":
			n.Kind = KindOptional
			n.Elem = new(TypeNode)
			return json.Unmarshal(raw, n.Elem)
		case "sequence":
			n.Kind = KindSequence
			n.Elem = new(TypeNode)
			return json.Unmarshal(raw, n.Elem)
		case "ref":
			n.Kind = KindReference
			return json.Unmarshal(raw, &n.Name)
		default:
			return fmt.Errorf("unknown type node tag %q", tag)
		}
	}
	return nil
}

// Field is a named table or struct member. Warning carries the annotation
// for members whose declared type could not be recognized and was
// degraded to primitive "unknown".
type Field struct {
	Name    string   `json:"name"`
	Type    TypeNode `json:"type"`
	Warning string   `json:"warning,omitempty"`
}

// Table is a database table. Fields keep declaration order; PrimaryKey
// holds field ordinals when the source carries them.
type Table struct {
	Name       string  `json:"name"`
	Fields     []Field `json:"fields"`
	PrimaryKey []int   `json:"primary_key,omitempty"`
}

// Struct is a named product type that is not a table row. Special is set
// (and Fields empty) when the whole type is one of the built-in special
// signatures.
type Struct struct {
	Name    string  `json:"name"`
	Fields  []Field `json:"fields"`
	Special string  `json:"special,omitempty"`
}

// Variant is a single enum case. Payload is nil for unit variants.
type Variant struct {
	Name    string    `json:"name"`
	Payload *TypeNode `json:"payload,omitempty"`
	Warning string    `json:"warning,omitempty"`
}

// Enum is a named sum type. Variants keep declaration order.
type Enum struct {
	Name     string    `json:"name"`
	Variants []Variant `json:"variants"`
	Special  string    `json:"special,omitempty"`
}

// Model is the normalized schema: name-keyed entities per kind. Names are
// unique within a kind; the builder rejects duplicates.
type Model struct {
	Tables  map[string]Table  `json:"tables"`
	Structs map[string]Struct `json:"structs"`
	Enums   map[string]Enum   `json:"enums"`
}

// NewModel returns an empty model with all three mappings allocated, so
// an empty model serializes as empty objects rather than nulls.
func NewModel() *Model {
	return &Model{
		Tables:  make(map[string]Table),
		Structs: make(map[string]Struct),
		Enums:   make(map[string]Enum),
	}
}

// Empty reports whether the model contains no entities at all.
func (m *Model) Empty() bool {
	return len(m.Tables) == 0 && len(m.Structs) == 0 && len(m.Enums) == 0
}

// DecodeModel parses the JSON form produced by the renderer back into a
// Model. Serialization is lossless, so DecodeModel(render) round-trips.
func DecodeModel(data []byte) (*Model, error) {
	m := NewModel()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, errs.Wrap(errs.ErrKindMalformedSchema, "model decode failed", err)
	}
	return m, nil
}
