package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// readFile returns the contents of path; "-" reads stdin.
func (a *app) readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("an input file is required (-f FILE, or -f - for stdin)")
	}
	if path == "-" {
		return io.ReadAll(a.opts.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// readText reads a plain-text input such as a job posting.
func (a *app) readText(path string) (string, error) {
	data, err := a.readFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeInput reads a JSON or YAML document into T. YAML is a superset of
// JSON, so both go through the YAML decoder and are then mapped onto T's
// json tags.
func decodeInput[T any](a *app, path string) (T, error) {
	var out T
	data, err := a.readFile(path)
	if err != nil {
		return out, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return out, fmt.Errorf("parse %s: %w", displayName(path), err)
	}
	if doc == nil {
		return out, fmt.Errorf("parse %s: empty document", displayName(path))
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("parse %s: %w", displayName(path), err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("parse %s: %w", displayName(path), err)
	}
	return out, nil
}

// writeDocument saves v as YAML for .yaml/.yml paths and as indented JSON
// otherwise; "-" writes to stdout.
func (a *app) writeDocument(path string, v any) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// Through JSON first so the keys are the wire names.
		var generic any
		if data, err = json.Marshal(v); err == nil {
			if err = json.Unmarshal(data, &generic); err == nil {
				data, err = yaml.Marshal(generic)
			}
		}
	default:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", displayName(path), err)
	}
	if path == "-" {
		_, err = a.opts.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

func addFileFlag(cmd *cobra.Command, target *string, usage string) {
	cmd.Flags().StringVarP(target, "file", "f", "", usage)
	_ = cmd.MarkFlagRequired("file")
}
