package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTable_Basic(t *testing.T) {
	path := writeFile(t, "basic.csv",
		"\"rating\",\"author\",\"text\"\n\"5\",\"Ivan\",\"Great\"\n\"4\",\"Anna\",\"OK\"\n")

	tbl, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"rating", "author", "text"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Ivan", tbl.Rows[0]["author"])
	assert.Equal(t, "OK", tbl.Rows[1]["text"])
}

func TestReadTable_MissingFile(t *testing.T) {
	tbl, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Columns)
}

func TestReadTable_LeadingBOM(t *testing.T) {
	path := writeFile(t, "bom.csv", "\uFEFFauthor,text\nIvan,Great\n")

	tbl, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"author", "text"}, tbl.Columns)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "Ivan", tbl.Rows[0]["author"])
}

func TestReadTable_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	tbl, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestReadTable_ShortRow(t *testing.T) {
	path := writeFile(t, "short.csv", "a,b,c\n1,2\n")

	tbl, err := ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "2", tbl.Rows[0]["b"])
	assert.Equal(t, "", tbl.Rows[0]["c"])
}

func TestReadTable_MultilineQuotedField(t *testing.T) {
	path := writeFile(t, "multiline.csv", "\"author\",\"text\"\n\"Ivan\",\"line one\nline two\"\n")

	tbl, err := ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "line one\nline two", tbl.Rows[0]["text"])
}
