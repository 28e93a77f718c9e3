package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.dat")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSpaceDelimited_LabelColumn(t *testing.T) {
	path := writeFixture(t, "1.2 3.4 A\n5.6 7.8 B\n9.0 1.1 C\n")

	table, err := ParseSpaceDelimited(path, ParseOptions{HasLabelColumn: true})
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, 2, table.Columns(), "data should have one fewer column than the raw row width")
	assert.Len(t, table.Target, table.Rows())
	assert.Equal(t, []string{"A", "B", "C"}, table.Target)
	assert.Equal(t, []string{"1.2", "3.4"}, table.Data[0])
}

func TestParseSpaceDelimited_NoLabelColumn(t *testing.T) {
	path := writeFixture(t, "1 2 3\n4 5 6\n")

	table, err := ParseSpaceDelimited(path, ParseOptions{HasLabelColumn: false})
	require.NoError(t, err)

	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, 3, table.Columns())
	assert.Equal(t, []string{"0", "0"}, table.Target, "target is zero-filled when no label column is requested")
}

// A label whose value is the conventional comment character must be
// preserved verbatim, never stripped.
func TestParseSpaceDelimited_HashLabelPreserved(t *testing.T) {
	path := writeFixture(t, "10.5 9.3 #\n11.2 8.1 #\n12.0 7.7 B\n")

	table, err := ParseSpaceDelimited(path, ParseOptions{HasLabelColumn: true})
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, []string{"#", "#", "B"}, table.Target)
}

func TestParseSpaceDelimited_SkipRows(t *testing.T) {
	// One count-header line, one comment line, then three data rows.
	content := "2\n# dimensionality above, data below\n1 2 x\n3 4 y\n5 6 z\n"
	path := writeFixture(t, content)

	table, err := ParseSpaceDelimited(path, ParseOptions{
		SkipRows:       SkipLines(0, 1),
		HasLabelColumn: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows(), "line count minus the two skipped header lines")
	assert.Equal(t, []string{"x", "y", "z"}, table.Target)
}

func TestParseSpaceDelimited_BlankLinesSkipped(t *testing.T) {
	content := "2\n# header\n1 2 x\n\n3 4 y\n   \n5 6 z\n"
	path := writeFixture(t, content)

	table, err := ParseSpaceDelimited(path, ParseOptions{
		SkipRows:       SkipLines(0, 1),
		HasLabelColumn: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows(), "blank lines are not data rows")
}

func TestParseSpaceDelimited_SkipRowsIndexPhysicalLines(t *testing.T) {
	// The blank line is physical line 1, so SkipLines(0, 1) must not
	// swallow the first data row at line 2.
	content := "99\n\n1 2 x\n3 4 y\n"
	path := writeFixture(t, content)

	table, err := ParseSpaceDelimited(path, ParseOptions{
		SkipRows:       SkipLines(0, 1),
		HasLabelColumn: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Rows())
}

func TestParseSpaceDelimited_MalformedRow(t *testing.T) {
	path := writeFixture(t, "1 2 3\n4 5\n")

	_, err := ParseSpaceDelimited(path, ParseOptions{})
	require.Error(t, err)

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, malformed.Line)
	assert.Equal(t, 2, malformed.Got)
	assert.Equal(t, 3, malformed.Want)
	assert.Contains(t, malformed.Error(), "malformed row")
}

func TestParseSpaceDelimited_MissingFile(t *testing.T) {
	_, err := ParseSpaceDelimited(filepath.Join(t.TempDir(), "absent.dat"), ParseOptions{})
	require.Error(t, err)
}

func TestParseSpaceDelimited_EmptyFile(t *testing.T) {
	path := writeFixture(t, "")

	table, err := ParseSpaceDelimited(path, ParseOptions{HasLabelColumn: true})
	require.NoError(t, err)
	assert.Equal(t, 0, table.Rows())
	assert.Equal(t, 0, table.Columns())
}

func TestParseSpaceDelimited_RunsOfWhitespace(t *testing.T) {
	path := writeFixture(t, "1\t\t2    x\n3 \t 4  y\n")

	table, err := ParseSpaceDelimited(path, ParseOptions{HasLabelColumn: true})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, 2, table.Columns())
	assert.Equal(t, []string{"x", "y"}, table.Target)
}

func TestColumnFloats(t *testing.T) {
	table := &Table{Data: [][]string{{"1.5", "a"}, {"2.5", "b"}}}

	vals, err := ColumnFloats(table, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, vals)

	_, err = ColumnFloats(table, 1)
	assert.Error(t, err, "non-numeric column should not coerce")

	_, err = ColumnFloats(table, 5)
	assert.Error(t, err)
}

func TestFloats(t *testing.T) {
	vals, err := Floats([]string{"1", "2.5"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5}, vals)

	_, err = Floats([]string{"#"})
	assert.Error(t, err)
}
