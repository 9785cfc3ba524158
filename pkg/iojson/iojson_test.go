package iojson

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteLine(&buf, item{ID: "a", Count: 1}))
	require.NoError(t, WriteLine(&buf, item{ID: "b", Count: 2}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"id":"a","count":1}`, lines[0])
	assert.JSONEq(t, `{"id":"b","count":2}`, lines[1])
}

func TestWriteLine_Unmarshalable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLine(&buf, map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteWith_Indents(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, item{ID: "a"}))

	assert.Contains(t, out.String(), "\n  \"id\": \"a\"")
	assert.Empty(t, errOut.String())
}

func TestMarshalError(t *testing.T) {
	got := MarshalError("task not found", map[string]any{"id": "abc"})

	var e Error
	require.NoError(t, json.Unmarshal([]byte(got), &e))
	assert.Equal(t, "task not found", e.Message)
	assert.Equal(t, "abc", e.Data["id"])
}

func TestFileReader_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a","count":3}]`), 0o644))

	fr := &FileReader[[]item]{fileFlagValue: path}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a", Count: 3}}, got)
}

func TestFileReader_MissingFile(t *testing.T) {
	fr := &FileReader[[]item]{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}
	_, err := fr.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}

func TestFileReader_Flag(t *testing.T) {
	fr := &FileReader[item]{}
	flag := fr.Flag()
	assert.Equal(t, "file", flag.Name)
	assert.Equal(t, []string{"f"}, flag.Aliases)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode[[]item](strings.NewReader("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
}
