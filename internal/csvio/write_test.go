package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable_QuotesEveryField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	tbl := NewTable("a", "b")
	tbl.Append(Row{"a": "1", "b": "plain"})
	tbl.Append(Row{"a": "with \"quote\"", "b": "x,y"})

	require.NoError(t, WriteTable(path, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"a","b"`, lines[0])
	assert.Equal(t, `"1","plain"`, lines[1])
	assert.Equal(t, `"with ""quote""","x,y"`, lines[2])
}

func TestWriteTable_HeaderOnlyForEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteTable(path, NewTable("rating", "author")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\"rating\",\"author\"\n", string(data))
}

func TestWriteTable_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "out.csv")
	require.NoError(t, WriteTable(path, NewTable("a")))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteTable_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))

	tbl := NewTable("a")
	tbl.Append(Row{"a": "new"})
	require.NoError(t, WriteTable(path, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\"a\"\n\"new\"\n", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteThenRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.csv")
	tbl := NewTable("rating", "text")
	tbl.Append(Row{"rating": "5", "text": "multi\nline, with \"quotes\""})

	require.NoError(t, WriteTable(path, tbl))
	got, err := ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "multi\nline, with \"quotes\"", got.Rows[0]["text"])
}
