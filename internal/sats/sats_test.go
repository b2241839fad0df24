package sats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacelens/spacelens/internal/errs"
)

func TestDecode_MinimalDocument(t *testing.T) {
	doc := `{
		"typespace": {"types": [{"Product": {"elements": []}}]},
		"tables": [{"name": "users", "product_type_ref": 0, "primary_key": []}],
		"types": []
	}`

	s, err := Decode([]byte(doc))
	require.NoError(t, err)

	require.Len(t, s.Tables, 1)
	assert.Equal(t, "users", s.Tables[0].Name)
	assert.Equal(t, 0, s.Tables[0].ProductTypeRef)
	require.Len(t, s.Typespace.Types, 1)
	assert.NotNil(t, s.Typespace.Types[0].Product)
}

func TestDecode_MissingCollections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an object", `[1, 2, 3]`},
		{"missing typespace", `{"tables": [], "types": []}`},
		{"missing tables", `{"typespace": {"types": []}, "types": []}`},
		{"missing types", `{"typespace": {"types": []}, "tables": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errs.IsMalformedSchema(err))
		})
	}
}

func TestAlgebraicType_Tags(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		check func(t *testing.T, at *AlgebraicType)
	}{
		{
			name: "scalar",
			doc:  `{"U32": []}`,
			check: func(t *testing.T, at *AlgebraicType) {
				assert.Equal(t, "U32", at.Scalar)
			},
		},
		{
			name: "array",
			doc:  `{"Array": {"String": []}}`,
			check: func(t *testing.T, at *AlgebraicType) {
				require.NotNil(t, at.Array)
				assert.Equal(t, "String", at.Array.Scalar)
			},
		},
		{
			name: "ref",
			doc:  `{"Ref": 7}`,
			check: func(t *testing.T, at *AlgebraicType) {
				require.NotNil(t, at.Ref)
				assert.Equal(t, 7, *at.Ref)
			},
		},
		{
			name: "product with named element",
			doc:  `{"Product": {"elements": [{"name": {"some": "id"}, "algebraic_type": {"U64": []}}]}}`,
			check: func(t *testing.T, at *AlgebraicType) {
				require.NotNil(t, at.Product)
				require.Len(t, at.Product.Elements, 1)
				name, ok := at.Product.Elements[0].Name.Get()
				assert.True(t, ok)
				assert.Equal(t, "id", name)
				assert.Equal(t, "U64", at.Product.Elements[0].Type.Scalar)
			},
		},
		{
			name: "sum with unnamed variant",
			doc:  `{"Sum": {"variants": [{"name": {"none": []}, "algebraic_type": {"Bool": []}}]}}`,
			check: func(t *testing.T, at *AlgebraicType) {
				require.NotNil(t, at.Sum)
				require.Len(t, at.Sum.Variants, 1)
				_, ok := at.Sum.Variants[0].Name.Get()
				assert.False(t, ok)
			},
		},
		{
			name: "builtin wrapper unwraps",
			doc:  `{"Builtin": {"I64": []}}`,
			check: func(t *testing.T, at *AlgebraicType) {
				assert.Equal(t, "I64", at.Scalar)
			},
		},
		{
			name: "unknown tag preserved",
			doc:  `{"Map": {"key_ty": {"String": []}, "ty": {"U32": []}}}`,
			check: func(t *testing.T, at *AlgebraicType) {
				assert.Equal(t, "Map", at.Unknown)
				assert.Empty(t, at.Scalar)
			},
		},
		{
			name: "empty object marked unknown",
			doc:  `{}`,
			check: func(t *testing.T, at *AlgebraicType) {
				assert.NotEmpty(t, at.Unknown)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var at AlgebraicType
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &at))
			tt.check(t, &at)
		})
	}
}

func TestTypeAt_Bounds(t *testing.T) {
	s := &Schema{Typespace: Typespace{Types: make([]AlgebraicType, 2)}}

	assert.NotNil(t, s.TypeAt(0))
	assert.NotNil(t, s.TypeAt(1))
	assert.Nil(t, s.TypeAt(2))
	assert.Nil(t, s.TypeAt(-1))
}
