package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("Valid UTF-8 CSV", func(t *testing.T) {
		csv := "Handle,Title\nshirt,Shirt\nhat,Hat"
		parser, err := NewCSVParser(strings.NewReader(csv))

		require.NoError(t, err)
		require.NotNil(t, parser)
	})

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		csv := "\xEF\xBB\xBFHandle,Title\nshirt,Shirt"
		parser, err := NewCSVParser(strings.NewReader(csv))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.Equal(t, "Handle", parser.Headers()[0])
	})

	t.Run("Empty file returns error", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader(""))

		assert.Nil(t, parser)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("Invalid UTF-8 returns error", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("Handle\n\xff\xfe\xfd"))

		assert.Nil(t, parser)
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("Rune split at the validation window is accepted", func(t *testing.T) {
		// "é" is two bytes; place its first byte at offset 4095
		csv := "Title\n" + strings.Repeat("a", 4095-len("Title\n")) + "é"
		parser, err := NewCSVParser(strings.NewReader(csv))

		require.NoError(t, err)
		require.NotNil(t, parser)
	})

	t.Run("Custom delimiter", func(t *testing.T) {
		csv := "Handle;Title;Vendor\nshirt;Shirt;Acme"
		parser, err := NewCSVParser(strings.NewReader(csv), WithDelimiter(';'))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.Equal(t, []string{"Handle", "Title", "Vendor"}, parser.Headers())
	})
}

func TestParseHeader(t *testing.T) {
	t.Run("Header with spaces trimmed", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("  Handle  ,  Title  \nshirt,Shirt"))

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"Handle", "Title"}, parser.Headers())
		assert.True(t, parser.HasHeader("Title"))
		assert.False(t, parser.HasHeader("title"))
	})

	t.Run("Blank header line is missing", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader(" \nshirt"))

		assert.ErrorIs(t, parser.ParseHeader(), ErrMissingHeader)
	})
}

func TestReadRow(t *testing.T) {
	t.Run("Line numbers count the header", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("Handle,Title\nshirt,Shirt\nhat,Hat"))
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, 2, row.LineNumber)
		assert.Equal(t, "shirt", row.Get("Handle"))
		assert.Equal(t, "", row.Get("handle"), "column lookup is case-sensitive")
		assert.False(t, row.Has("handle"))

		row, err = parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, 3, row.LineNumber)

		_, err = parser.ReadRow()
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, 2, parser.TotalRows())
	})

	t.Run("Ragged rows are padded and truncated", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("Handle,Title,Vendor\nshirt\nhat,Hat,Acme,extra"))
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "", row.Get("Title"))
		assert.True(t, row.Has("Vendor"))

		row, err = parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, []string{"hat", "Hat", "Acme"}, row.Values())
	})

	t.Run("Duplicate header keeps the first column", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("Title,Title\nfirst,second"))
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "first", row.Get("Title"))
	})
}

func TestReadAllRows(t *testing.T) {
	csv := "Handle,Title\nshirt,Shirt\n,\nhat,Hat\n"
	parser, _ := NewCSVParser(strings.NewReader(csv))
	require.NoError(t, parser.ParseHeader())

	rows, errs := parser.ReadAllRows()

	assert.Empty(t, errs)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].LineNumber)
	assert.Equal(t, 4, rows[1].LineNumber, "skipped empty row still counts")
}

func TestParseFromBytes(t *testing.T) {
	parser, err := ParseFromBytes([]byte("Handle\nshirt"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())
	assert.Equal(t, 1, parser.CurrentRow())
}

func TestQuotedFields(t *testing.T) {
	csv := "Handle,Body (HTML)\nshirt,\"Soft, cotton \"\"tee\"\"\"\nhat,\"two\nlines\""
	parser, _ := NewCSVParser(strings.NewReader(csv))
	require.NoError(t, parser.ParseHeader())

	rows, errs := parser.ReadAllRows()

	assert.Empty(t, errs)
	require.Len(t, rows, 2)
	assert.Equal(t, `Soft, cotton "tee"`, rows[0].Get("Body (HTML)"))
	assert.Equal(t, "two\nlines", rows[1].Get("Body (HTML)"))
}
