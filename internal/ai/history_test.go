package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_ZeroValueIsEmpty(t *testing.T) {
	var h History
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Turns())
}

func TestHistory_AppendUserTurn(t *testing.T) {
	var h History
	h.AppendUserTurn("Hello")

	turns := h.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, []Part{{Text: "Hello"}}, turns[0].Parts)
	assert.Nil(t, turns[0].Raw())

	b, err := json.Marshal(turns[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"user","parts":[{"text":"Hello"}]}`, string(b))
}

func TestHistory_AppendModelTurnPreservesUnknownFields(t *testing.T) {
	content := `{"role":"model","parts":[{"text":"Hi","thought":false},{"text":" there"}],"extra":{"a":1}}`

	var h History
	require.NoError(t, h.AppendModelTurn(json.RawMessage(content)))

	turns := h.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, RoleModel, turns[0].Role)
	assert.Equal(t, "Hi there", turns[0].Text())

	b, err := json.Marshal(turns[0])
	require.NoError(t, err)
	assert.JSONEq(t, content, string(b))
}

func TestHistory_AppendModelTurnRejectsEmptyParts(t *testing.T) {
	var h History

	require.Error(t, h.AppendModelTurn(json.RawMessage(`{"role":"model","parts":[]}`)))
	require.Error(t, h.AppendModelTurn(json.RawMessage(`{"role":"model"}`)))
	require.Error(t, h.AppendModelTurn(json.RawMessage(`[]`)))
	require.Error(t, h.AppendModelTurn(json.RawMessage(`not json`)))
	require.Error(t, h.AppendModelTurn(json.RawMessage(`{"role":"model","parts":"text"}`)))

	assert.Equal(t, 0, h.Len())
}

func TestHistory_AppendModelTurnKeepsPartsItCannotRead(t *testing.T) {
	content := `{"role":"model","parts":[{"text":"a"},{"text":7},"opaque",{"functionCall":{"name":"f"}},{"text":"b"}]}`

	var h History
	require.NoError(t, h.AppendModelTurn(json.RawMessage(content)))

	turn := h.Turns()[0]
	require.Len(t, turn.Parts, 5)
	assert.Equal(t, "ab", turn.Text())
	assert.Equal(t, content, string(turn.Raw()))
}

func TestHistory_AppendModelTurnCopiesInput(t *testing.T) {
	content := []byte(`{"role":"model","parts":[{"text":"a"}]}`)

	var h History
	require.NoError(t, h.AppendModelTurn(content))
	content[len(content)-5] = 'b'

	b, err := json.Marshal(h.Turns()[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"model","parts":[{"text":"a"}]}`, string(b))
}

func TestHistory_TurnsReturnsCopy(t *testing.T) {
	var h History
	h.AppendUserTurn("original")

	turns := h.Turns()
	turns[0].Parts[0].Text = "changed"

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "original", h.Turns()[0].Parts[0].Text)
}

func TestHistory_PreservesOrder(t *testing.T) {
	var h History
	h.AppendUserTurn("1")
	require.NoError(t, h.AppendModelTurn(json.RawMessage(`{"role":"model","parts":[{"text":"2"}]}`)))
	h.AppendUserTurn("3")

	turns := h.Turns()
	require.Len(t, turns, 3)
	for i, expected := range []string{"1", "2", "3"} {
		assert.Equal(t, expected, turns[i].Text())
	}
	assert.Equal(t, []Role{RoleUser, RoleModel, RoleUser}, []Role{turns[0].Role, turns[1].Role, turns[2].Role})
}
