package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/abstracttype/duration"
	"github.com/goliatone/go-typeconfig/pkg/columnsettings"
	"github.com/goliatone/go-typeconfig/pkg/form"
)

func run(t *testing.T, stdin string, args []string, opts ...Option) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	opts = append([]Option{WithLogOutput(io.Discard)}, opts...)
	cmd := NewRootCommand(opts...)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestTypesCommand(t *testing.T) {
	out, err := run(t, "", []string{"types"})
	require.NoError(t, err)

	var got []typeSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, typeSummary{Type: "duration", Icon: duration.IconToken, Cell: "string"}, got[0])
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "", []string{"schema", "duration", "--format", "yaml"})
	require.NoError(t, err)

	schema, err := form.Parse([]byte(out), "schema output")
	require.NoError(t, err)
	assert.Contains(t, schema.Variables, duration.VariableName)
	assert.Equal(t, duration.ComponentID, schema.Layout.Elements[0].ComponentID)
}

func TestSchemaCommand_UnknownType(t *testing.T) {
	_, err := run(t, "", []string{"schema", "money"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, abstracttype.ErrUnknownType))
}

func TestOptionsSchemaCommand(t *testing.T) {
	out, err := run(t, "", []string{"options-schema", "--title", "Columns"})
	require.NoError(t, err)

	doc := decode(t, out)
	assert.Equal(t, "Columns", doc["info"].(map[string]any)["title"])
	schemas := doc["components"].(map[string]any)["schemas"].(map[string]any)
	assert.Contains(t, schemas, "DurationDisplayOptions")
}

func TestNormalizeCommand(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, `{"max": "h", "legacy": true}`, []string{"normalize", "duration", "--in", "-"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"max": "h", "min": "s", "show_units": false}, decode(t, out))
	})

	t.Run("absent options use config defaults", func(t *testing.T) {
		out, err := run(t, "", []string{"normalize", "duration", "--duration-max", "d", "--duration-min", "h"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"max": "d", "min": "h", "show_units": false}, decode(t, out))
	})

	t.Run("invalid stored unit", func(t *testing.T) {
		_, err := run(t, `{"max": "weeks"}`, []string{"normalize", "duration", "--in", "-"})
		require.Error(t, err)
	})
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "max: d\nmin: h\nshow_units: false\n", []string{"validate", "duration"})
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	_, err = run(t, "max: d\nshow_units: maybe\n", []string{"validate", "duration"})
	require.Error(t, err)
}

func TestEditCommand(t *testing.T) {
	renderer := columnsettings.FormRendererFunc(func(_ context.Context, _ form.Schema, seed form.Values) (form.Values, error) {
		payload := seed[duration.VariableName].(map[string]any)
		assert.Equal(t, "h", payload["max"])
		return form.Values{duration.VariableName: map[string]any{"max": "d", "min": "m"}}, nil
	})

	t.Run("stdout", func(t *testing.T) {
		out, err := run(t, `{"max": "h"}`, []string{"edit", "duration", "--in", "-"}, WithRenderer(renderer))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"max": "d", "min": "m", "show_units": false}, decode(t, out))
	})

	t.Run("out file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "options.yaml")
		out, err := run(t, `{"max": "h"}`, []string{"edit", "duration", "--in", "-", "--out", target}, WithRenderer(renderer))
		require.NoError(t, err)
		assert.Empty(t, out)

		raw, err := os.ReadFile(target)
		require.NoError(t, err)
		var written map[string]any
		require.NoError(t, yaml.Unmarshal(raw, &written))
		assert.Equal(t, map[string]any{"max": "d", "min": "m", "show_units": false}, written)
	})

	t.Run("aborted", func(t *testing.T) {
		aborted := columnsettings.FormRendererFunc(func(context.Context, form.Schema, form.Values) (form.Values, error) {
			return nil, errors.New("interrupted")
		})
		out, err := run(t, "", []string{"edit", "duration"}, WithRenderer(aborted))
		require.Error(t, err)
		assert.Empty(t, out)
	})
}

func TestInvalidConfig(t *testing.T) {
	_, err := run(t, "", []string{"types", "--duration-max", "weeks"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration.default_max")
}
