package schema

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacelens/spacelens/internal/logger"
	"github.com/spacelens/spacelens/internal/sats"
)

// chatSchemaJSON is a trimmed-down schema document in the shape served by
// a real instance: one table (users), one enum (Status), and one named
// special type (Identity).
const chatSchemaJSON = `{
	"typespace": {"types": [
		{"Product": {"elements": [
			{"name": {"some": "id"}, "algebraic_type":
				{"Product": {"elements": [
					{"name": {"some": "__identity__"}, "algebraic_type": {"U256": []}}
				]}}},
			{"name": {"some": "nickname"}, "algebraic_type":
				{"Sum": {"variants": [
					{"name": {"some": "Some"}, "algebraic_type": {"String": []}},
					{"name": {"some": "None"}, "algebraic_type": {"Product": {"elements": []}}}
				]}}}
		]}},
		{"Sum": {"variants": [
			{"name": {"some": "Online"}, "algebraic_type": {"Product": {"elements": []}}},
			{"name": {"some": "Offline"}, "algebraic_type": {"Product": {"elements": []}}}
		]}},
		{"Product": {"elements": [
			{"name": {"some": "__identity__"}, "algebraic_type": {"U256": []}}
		]}}
	]},
	"tables": [
		{"name": "users", "product_type_ref": 0, "primary_key": [0]}
	],
	"types": [
		{"name": {"scope": [], "name": "Status"}, "ty": 1, "custom_ordering": false},
		{"name": {"scope": [], "name": "Identity"}, "ty": 2, "custom_ordering": false}
	]
}`

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "json", Output: io.Discard})
}

func buildFixture(t *testing.T) *Model {
	t.Helper()
	raw, err := sats.Decode([]byte(chatSchemaJSON))
	require.NoError(t, err)
	m, err := Build(raw, testLogger())
	require.NoError(t, err)
	return m
}
