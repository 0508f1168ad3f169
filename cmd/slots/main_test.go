package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dball/slots/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const schemaYAML = `
log:
  level: error
models:
  - name: invoice
    attrs:
      - {name: total, type: float, useNull: true}
      - {name: lines, type: int, default: 1}
      - {name: issued, type: date}
`

func writeSchema(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(schemaYAML), 0o600))
	return path
}

func TestTypesCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"types"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "float\tfloat\n")
	assert.Contains(t, out.String(), "number\tfloat\n")
	assert.Contains(t, out.String(), "mixed\tmixed\n")
}

func TestCoerceCmd(t *testing.T) {
	path := writeSchema(t)

	t.Run("prints stored values", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"coerce", "--schema", path, "--model", "invoice", "total=12abc", "lines=3", "issued=2020-01-01"})
		require.NoError(t, cmd.Execute())

		var rep report
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &rep))
		assert.Equal(t, "invoice", rep.Model)
		assert.Equal(t, "NaN", rep.Values["total"])
		assert.Equal(t, 3, rep.Values["lines"])
		assert.Equal(t, []string{"total", "lines", "issued"}, rep.Changed)
	})

	t.Run("empty input with useNull", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"coerce", "--schema", path, "--model", "invoice", "total="})
		require.NoError(t, cmd.Execute())
		var rep report
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &rep))
		assert.Nil(t, rep.Values["total"])
		assert.Empty(t, rep.Changed)
	})

	t.Run("unknown model", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"coerce", "--schema", path, "--model", "receipt"})
		assert.ErrorIs(t, cmd.Execute(), types.Error{Code: "slots.unknownModel"})
	})

	t.Run("bad assignment", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"coerce", "--schema", path, "--model", "invoice", "total"})
		assert.ErrorIs(t, cmd.Execute(), types.Error{Code: "slots.invalidAssignment"})
	})

	t.Run("unknown slot", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"coerce", "--schema", path, "--model", "invoice", "colour=red"})
		assert.ErrorIs(t, cmd.Execute(), types.Error{Code: "record.unknownAttr"})
	})
}
