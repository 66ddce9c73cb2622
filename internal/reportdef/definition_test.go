package reportdef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

const sampleDefinition = `
title = "Sprint 14"
space = "ENG"
parent_id = "100"
overwrite = "always"
mode = "append"

[[block]]
kind = "heading"
level = 2
text = "Summary"

[[block]]
kind = "table"
title = "Inline"
columns = ["A", "B"]
rows = [["1", "2"]]

[[block]]
kind = "expand"
title = "Details"

  [[block.block]]
  kind = "paragraph"
  text = "Inside"

[[block]]
kind = "layout"

  [[block.section]]
  type = "two_equal"

    [[block.section.cell]]
      [[block.section.cell.block]]
      kind = "status"
      text = "OK"
      colour = "Green"

    [[block.section.cell]]
      [[block.section.cell.block]]
      kind = "divider"
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(sampleDefinition))
	require.NoError(t, err)

	assert.Equal(t, "Sprint 14", def.Title)
	assert.Equal(t, "ENG", def.Space)
	assert.Equal(t, "100", def.ParentID)
	assert.Equal(t, "always", def.Overwrite)
	assert.Equal(t, "append", def.Mode)
	require.Len(t, def.Blocks, 4)
	assert.Equal(t, "heading", def.Blocks[0].Kind)
	assert.Equal(t, [][]string{{"1", "2"}}, def.Blocks[1].Rows)
	require.Len(t, def.Blocks[2].Blocks, 1)
	assert.Equal(t, "Inside", def.Blocks[2].Blocks[0].Text)
	require.Len(t, def.Blocks[3].Sections, 1)
	assert.Len(t, def.Blocks[3].Sections[0].Cells, 2)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax error", `title = `},
		{"unknown key", "title = \"x\"\ncolor = \"red\"\n[[block]]\nkind = \"divider\""},
		{"missing title", "[[block]]\nkind = \"divider\""},
		{"no blocks", `title = "x"`},
		{"unknown kind", "title = \"x\"\n[[block]]\nkind = \"chart\""},
		{"heading without text", "title = \"x\"\n[[block]]\nkind = \"heading\""},
		{"bad overwrite", "title = \"x\"\noverwrite = \"maybe\"\n[[block]]\nkind = \"divider\""},
		{"table without source", "title = \"x\"\n[[block]]\nkind = \"table\""},
		{"table with two sources", "title = \"x\"\n[[block]]\nkind = \"table\"\ncsv = \"a.csv\"\nrows = [[\"1\"]]"},
		{"bad colour", "title = \"x\"\n[[block]]\nkind = \"status\"\ntext = \"s\"\ncolour = \"Pink\""},
		{"bad date", "title = \"x\"\n[[block]]\nkind = \"date\"\ndate = \"11/05/2021\""},
		{"link without target", "title = \"x\"\n[[block]]\nkind = \"link\"\ntext = \"t\""},
		{"iframe bad url", "title = \"x\"\n[[block]]\nkind = \"iframe\"\nurl = \"not a url\""},
		{"sheet without range", "title = \"x\"\n[[block]]\nkind = \"table\"\nsheet = { spreadsheet_id = \"s\" }"},
		{"pull requests without repo", "title = \"x\"\n[[block]]\nkind = \"table\"\npull_requests = { owner = \"o\" }"},
		{"empty expand", "title = \"x\"\n[[block]]\nkind = \"expand\"\ntitle = \"t\""},
		{"nested invalid", "title = \"x\"\n[[block]]\nkind = \"expand\"\n[[block.block]]\nkind = \"paragraph\""},
		{"layout cell count", "title = \"x\"\n[[block]]\nkind = \"layout\"\n[[block.section]]\ntype = \"three_equal\"\n[[block.section.cell]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDefinition), 0o600))

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 14", def.Title)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, def.Dir())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
