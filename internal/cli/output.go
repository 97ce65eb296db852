package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
)

// maxCell truncates long table values such as descriptions and data URLs.
const maxCell = 60

func (a *app) format() string {
	if a.output != "" {
		return a.output
	}
	if f, ok := a.opts.Stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "table"
	}
	return "json"
}

// print writes a server answer in the selected format.
func (a *app) print(v any) error {
	if a.format() == "table" {
		return writeTable(a.opts.Stdout, v)
	}
	enc := json.NewEncoder(a.opts.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// note writes a human message to stderr so stdout stays machine-readable.
func (a *app) note(format string, args ...any) {
	fmt.Fprintf(a.opts.Stderr, format+"\n", args...)
}

// writeTable renders objects as key/value rows and lists of objects as one
// row per element. The value is normalised through JSON first, so the
// columns are the wire field names.
func writeTable(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch val := generic.(type) {
	case nil:
		fmt.Fprintln(tw, "(none)")
	case map[string]any:
		for _, k := range sortedKeys(val) {
			fmt.Fprintf(tw, "%s\t%s\n", k, cell(val[k]))
		}
	case []any:
		if len(val) == 0 {
			fmt.Fprintln(tw, "(none)")
			break
		}
		cols := columns(val)
		if len(cols) == 0 {
			for _, item := range val {
				fmt.Fprintln(tw, cell(item))
			}
			break
		}
		fmt.Fprintln(tw, strings.ToUpper(strings.Join(cols, "\t")))
		for _, item := range val {
			row, _ := item.(map[string]any)
			cells := make([]string, len(cols))
			for i, c := range cols {
				cells[i] = cell(row[c])
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	default:
		fmt.Fprintln(tw, cell(val))
	}
	return tw.Flush()
}

// columns lists the scalar fields of a list of objects, id first.
func columns(items []any) []string {
	seen := map[string]bool{}
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			return nil
		}
		for k, v := range row {
			switch v.(type) {
			case map[string]any, []any:
				continue
			}
			seen[k] = true
		}
	}
	cols := sortedKeys(seen)
	sort.SliceStable(cols, func(i, j int) bool { return cols[i] == "id" && cols[j] != "id" })
	return cols
}

func cell(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		s = "-"
	case string:
		s = val
	case float64:
		s = fmt.Sprintf("%g", val)
	case map[string]any, []any:
		raw, _ := json.Marshal(val)
		s = string(raw)
	default:
		s = fmt.Sprint(val)
	}
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxCell {
		s = string(r[:maxCell-3]) + "..."
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
