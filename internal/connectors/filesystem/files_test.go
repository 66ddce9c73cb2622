package filesystem

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/markup"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		baseDir string
		want    string
	}{
		{"file URI", "file:///data/q1.csv", "/reports", "/data/q1.csv"},
		{"absolute path", "/data/q1.csv", "/reports", "/data/q1.csv"},
		{"relative path", "data/q1.csv", "/reports", filepath.Join("/reports", "data/q1.csv")},
		{"relative without base", "data/q1.csv", "", "data/q1.csv"},
		{"empty", "", "/reports", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri, tt.baseDir))
		})
	}
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	content := "Team, Score\nCore,42\nInfra,<7>,extra\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := ReadCSV(path, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"Team", "Score"}, table.Header)
	assert.Equal(t, [][]string{
		{"Core", "42"},
		{"Infra", "&lt;7&gt;", "extra"},
	}, table.Rows)
}

func TestReadCSV_ControlCharactersRenderWellFormed(t *testing.T) {
	table, err := parseCSV(strings.NewReader("Name,Note\nbell\x07,bad\xffbyte\x0b\n"), true)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"bell", "bad\uFFFDbyte"}}, table.Rows)
	assert.NoError(t, markup.Check(markup.Table(*table)))
}

func TestReadCSV_NoHeader(t *testing.T) {
	table, err := parseCSV(strings.NewReader("a,b\nc,d\n"), false)
	require.NoError(t, err)
	assert.Nil(t, table.Header)
	assert.Len(t, table.Rows, 2)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"), true)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = parseCSV(strings.NewReader("a,\"unterminated\n"), true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadImage(t *testing.T) {
	pic := image.NewRGBA(image.Rect(0, 0, 2, 2))
	pic.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, pic))

	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	img, err := ReadImage(path, "Chart")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "Chart", img.Title)
	assert.Equal(t, buf.Bytes(), img.Data)

	textPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("hello"), 0o600))
	_, err = ReadImage(textPath, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
