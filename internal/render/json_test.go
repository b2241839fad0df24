package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacelens/spacelens/internal/schema"
)

func TestJSON_RoundTrip(t *testing.T) {
	m := chatModel()

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, m))

	got, err := schema.DecodeModel(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestJSON_EmptyModel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, schema.NewModel()))

	assert.JSONEq(t, `{"tables":{},"structs":{},"enums":{}}`, buf.String())
}

func TestJSON_FieldOrderPreserved(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, chatModel()))

	var doc struct {
		Tables map[string]struct {
			Fields []struct {
				Name string `json:"name"`
			} `json:"fields"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	users := doc.Tables["users"]
	require.Len(t, users.Fields, 2)
	assert.Equal(t, "id", users.Fields[0].Name)
	assert.Equal(t, "nickname", users.Fields[1].Name)
}

func TestRaw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Raw(&buf, []byte(`{"typespace":{}}`)))
	assert.Equal(t, "{\"typespace\":{}}\n", buf.String())

	buf.Reset()
	require.NoError(t, Raw(&buf, []byte("already terminated\n")))
	assert.Equal(t, "already terminated\n", buf.String())
}
