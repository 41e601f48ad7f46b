package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/columnsettings"
	"github.com/goliatone/go-typeconfig/pkg/openapi"
)

type typeSummary struct {
	Type string `json:"type" yaml:"type"`
	Icon string `json:"icon" yaml:"icon"`
	Cell string `json:"cell" yaml:"cell"`
}

func (a *app) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered abstract types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types := a.registry.List()
			out := make([]typeSummary, 0, len(types))
			for _, typ := range types {
				cfg := a.registry.MustGet(typ)
				out = append(out, typeSummary{
					Type: string(typ),
					Icon: cfg.Icon(),
					Cell: string(cfg.Cell().Type),
				})
			}
			return a.write(cmd, out)
		},
	}
}

func (a *app) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <type>",
		Short: "Print the display settings form of an abstract type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			display, err := a.registry.DisplayConfig(abstracttype.Type(args[0]))
			if err != nil {
				return err
			}
			return a.write(cmd, display.Form)
		},
	}
}

func (a *app) optionsSchemaCommand() *cobra.Command {
	var title, version string
	cmd := &cobra.Command{
		Use:   "options-schema",
		Short: "Print the OpenAPI components describing stored display options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := openapi.Document(a.registry, title, version)
			if err != nil {
				return err
			}
			generic, err := toGeneric(doc)
			if err != nil {
				return err
			}
			return a.write(cmd, generic)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "document title")
	cmd.Flags().StringVar(&version, "version", "", "document version")
	return cmd
}

func (a *app) normalizeCommand() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "normalize <type>",
		Short: "Fill defaults into stored display options without editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := abstracttype.Type(args[0])
			current, err := readOptions(in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			editor := columnsettings.New(a.registry, columnsettings.WithLogger(a.log(cmd)))
			options, err := editor.Normalize(typ, current)
			if err != nil {
				return err
			}
			if err := openapi.ValidateOptions(a.registry, typ, options); err != nil {
				return err
			}
			return a.write(cmd, options)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "stored options file (JSON or YAML, - for stdin)")
	return cmd
}

func (a *app) validateCommand() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "validate <type>",
		Short: "Check stored display options against the type's published schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := abstracttype.Type(args[0])
			current, err := readOptions(in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := openapi.ValidateOptions(a.registry, typ, current); err != nil {
				return err
			}
			a.log(cmd).Info("display options valid", "type", string(typ))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}
	cmd.Flags().StringVar(&in, "in", "-", "stored options file (JSON or YAML, - for stdin)")
	return cmd
}

func (a *app) editCommand() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "edit <type>",
		Short: "Interactively edit display options and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := abstracttype.Type(args[0])
			current, err := readOptions(in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			editor := columnsettings.New(a.registry,
				columnsettings.WithRenderer(a.renderer),
				columnsettings.WithLogger(a.log(cmd)),
			)
			options, err := editor.Edit(cmd.Context(), typ, current)
			if err != nil {
				return err
			}
			if strings.TrimSpace(out) == "" {
				return a.write(cmd, options)
			}
			return a.writeFile(out, options)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "stored options file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&out, "out", "", "write the result to this file instead of stdout")
	return cmd
}

// toGeneric flattens values with custom JSON marshalling (kin-openapi types)
// into plain maps so every output format sees the same shape.
func toGeneric(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return out, nil
}
