// Package sats decodes the raw SATS (SpacetimeDB Algebraic Type System)
// schema document as served by a SpacetimeDB instance.
//
// The document encodes type descriptors as single-key tagged objects,
// e.g. {"U32": []}, {"Array": {...}}, {"Ref": 7}. Decoding probes that
// single key instead of relying on field names, mirroring the untagged
// union encoding on the wire. Unknown tags are preserved rather than
// rejected so a partially recognized schema still decodes.
package sats

import (
	"encoding/json"
	"fmt"

	"github.com/spacelens/spacelens/internal/errs"
)

// Schema is the top-level fetched document: a typespace of anonymous type
// definitions plus name registries for tables and standalone types.
type Schema struct {
	Typespace Typespace    `json:"typespace"`
	Tables    []TableEntry `json:"tables"`
	Types     []NamedType  `json:"types"`
}

// Typespace holds every type definition; tables and named types refer to
// entries here by index.
type Typespace struct {
	Types []AlgebraicType `json:"types"`
}

// TableEntry binds a table name to its row type in the typespace.
type TableEntry struct {
	Name           string `json:"name"`
	ProductTypeRef int    `json:"product_type_ref"`
	PrimaryKey     []int  `json:"primary_key"`
}

// NamedType binds a name to a typespace entry (structs, enums, aliases).
type NamedType struct {
	Name           ScopedName `json:"name"`
	Ty             int        `json:"ty"`
	CustomOrdering bool       `json:"custom_ordering"`
}

// ScopedName is a possibly module-scoped type name.
type ScopedName struct {
	Scope []string `json:"scope"`
	Name  string   `json:"name"`
}

// ProductType is an ordered list of named elements (a struct or row type).
type ProductType struct {
	Elements []Element `json:"elements"`
}

// SumType is an ordered list of variants (an enum or option shape).
type SumType struct {
	Variants []Element `json:"variants"`
}

// Element is a single product field or sum variant.
type Element struct {
	Name OptionName    `json:"name"`
	Type AlgebraicType `json:"algebraic_type"`
}

// OptionName is the wire encoding of an optional member name:
// {"some": "x"} or {"none": []}.
type OptionName struct {
	name  string
	valid bool
}

// Get returns the name and whether one was present.
func (n OptionName) Get() (string, bool) {
	return n.name, n.valid
}

// Some returns an OptionName carrying a name. Used by tests and builders.
func Some(name string) OptionName {
	return OptionName{name: name, valid: true}
}

func (n *OptionName) UnmarshalJSON(data []byte) error {
	var obj struct {
		Some *string `json:"some"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Some != nil {
		n.name = *obj.Some
		n.valid = true
	}
	return nil
}

func (n OptionName) MarshalJSON() ([]byte, error) {
	if n.valid {
		return json.Marshal(map[string]string{"some": n.name})
	}
	return []byte(`{"none":[]}`), nil
}

// scalarTags are the terminal builtin tags of the wire format.
var scalarTags = map[string]bool{
	"Bool": true,
	"I8":   true, "U8": true,
	"I16": true, "U16": true,
	"I32": true, "U32": true,
	"I64": true, "U64": true,
	"I128": true, "U128": true,
	"I256": true, "U256": true,
	"F32": true, "F64": true,
	"String": true,
}

// AlgebraicType is one decoded type descriptor. Exactly one of the fields
// is set; Unknown records an unrecognized or malformed tag for the
// resolver's degradation path instead of failing the decode.
type AlgebraicType struct {
	Scalar  string // one of scalarTags, e.g. "U32"
	Array   *AlgebraicType
	Product *ProductType
	Sum     *SumType
	Ref     *int
	Unknown string
}

func (t *AlgebraicType) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("type descriptor is not an object: %w", err)
	}
	if len(obj) != 1 {
		t.Unknown = fmt.Sprintf("descriptor with %d tags", len(obj))
		return nil
	}
	for tag, raw := range obj {
		switch tag {
		case "Array":
			t.Array = new(AlgebraicType)
			return json.Unmarshal(raw, t.Array)
		case "Product":
			t.Product = new(ProductType)
			return json.Unmarshal(raw, t.Product)
		case "Sum":
			t.Sum = new(SumType)
			return json.Unmarshal(raw, t.Sum)
		case "Ref":
			t.Ref = new(int)
			return json.Unmarshal(raw, t.Ref)
		case "Builtin":
			// Typespace entries wrap builtins one level deeper.
			return json.Unmarshal(raw, t)
		default:
			if scalarTags[tag] {
				t.Scalar = tag
			} else {
				t.Unknown = tag
			}
			return nil
		}
	}
	return nil
}

// Decode parses a fetched schema document. A document whose top level is
// not an object carrying the typespace, tables, and types collections
// fails with a malformed-schema error; unknown type tags inside the
// typespace do not.
func Decode(data []byte) (*Schema, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errs.Wrap(errs.ErrKindMalformedSchema, "schema document is not a JSON object", err)
	}
	for _, key := range []string{"typespace", "tables", "types"} {
		if _, ok := probe[key]; !ok {
			return nil, errs.Newf(errs.ErrKindMalformedSchema, "schema document is missing %q", key)
		}
	}

	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errs.Wrap(errs.ErrKindMalformedSchema, "schema document decode failed", err)
	}
	return &s, nil
}

// TypeAt returns the typespace entry at index i, or nil when i is out of
// range. Table row refs and named-type refs go through here.
func (s *Schema) TypeAt(i int) *AlgebraicType {
	if i < 0 || i >= len(s.Typespace.Types) {
		return nil
	}
	return &s.Typespace.Types[i]
}
