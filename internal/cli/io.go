package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/form"
)

// readOptions loads stored display options from path ("-" reads stdin, ""
// means the column was never configured). JSON is read through the YAML
// decoder. Empty documents and null yield nil options.
func readOptions(path string, stdin io.Reader) (abstracttype.DisplayOptions, error) {
	var data []byte
	var err error
	switch strings.TrimSpace(path) {
	case "":
		return nil, nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var options abstracttype.DisplayOptions
	if err := yaml.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("decode options %s: %w", sourceName(path), err)
	}
	return options, nil
}

func (a *app) writeFile(path string, value any) error {
	format := form.Format(a.cfg.Format)
	if ext := strings.ToLower(path); strings.HasSuffix(ext, ".yaml") || strings.HasSuffix(ext, ".yml") {
		format = form.FormatYAML
	} else if strings.HasSuffix(ext, ".json") {
		format = form.FormatJSON
	}
	out, err := form.Encode(value, format)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sourceName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
