// package formatter exports a snapshot of a control tree to various formats (Markdown, CSV, YAML, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
	"github.com/desertthunder/lacery/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an export format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
	FormatYAML     Format = "yaml"
	FormatText     Format = "txt"
)

// ParseFormat accepts a format name or a common alias ("markdown", "yml", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, s)
	}
}

// Row is one node of a control tree snapshot.
type Row struct {
	Path   string   `yaml:"path"`
	Label  string   `yaml:"label"`
	Kind   string   `yaml:"kind"`
	Keys   []string `yaml:"keys,omitempty"`
	Values []string `yaml:"values,omitempty"`
	Hidden bool     `yaml:"hidden,omitempty"`
	Depth  int      `yaml:"-"`
}

type kinded interface {
	Kind() string
}

// Snapshot walks l depth first and records every container and control in display order.
// A node is hidden when it or any ancestor is hidden.
func Snapshot(l *lace.Lace) []Row {
	var rows []Row
	snapshot(l.Elements(), "", 0, false, &rows)
	return rows
}

func snapshot(elems []lace.Element, prefix string, depth int, hidden bool, rows *[]Row) {
	for _, e := range elems {
		label := labelOf(e)
		path := join(prefix, label)
		h := hidden || e.Handle().Hidden()

		row := Row{Path: path, Label: label, Kind: kindOf(e), Hidden: h, Depth: depth}
		if e.Binds() && e.Obj() != nil {
			row.Keys = e.Keys()
			for _, k := range row.Keys {
				row.Values = append(row.Values, valueOf(e.Obj(), k))
			}
		}
		*rows = append(*rows, row)

		switch c := e.(type) {
		case *lace.Tab:
			for _, p := range c.Panels() {
				ppath := join(path, p.Name())
				*rows = append(*rows, Row{Path: ppath, Label: p.Name(), Kind: "tabPanel", Hidden: h, Depth: depth + 1})
				snapshot(p.Elements(), ppath, depth+2, h, rows)
			}
		case lace.Container:
			snapshot(c.Elements(), path, depth+1, h, rows)
		}
	}
}

func labelOf(e lace.Element) string {
	if l, ok := e.(interface{ Text() string }); ok && e.Label() == "laceLabel" {
		return l.Text()
	}
	return e.Label()
}

func kindOf(e lace.Element) string {
	switch e.(type) {
	case *lace.Folder:
		return "folder"
	case *lace.Group:
		return "group"
	case *lace.Tab:
		return "tab"
	}
	if k, ok := e.(kinded); ok {
		return k.Kind()
	}
	return "element"
}

func valueOf(obj any, key string) string {
	raw, ok := binding.Get(obj, key)
	if !ok || raw == nil {
		return ""
	}
	if b, ok := raw.([]byte); ok {
		if len(b) == 0 {
			return ""
		}
		return fmt.Sprintf("<%d bytes>", len(b))
	}
	return binding.String(obj, key)
}

func join(prefix, label string) string {
	if prefix == "" {
		return label
	}
	return prefix + "/" + label
}

// ToCSV renders rows with columns: Path, Label, Kind, Keys, Values, Hidden. Keys and values are joined with ";".
func ToCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Path", "Label", "Kind", "Keys", "Values", "Hidden"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Path,
			row.Label,
			row.Kind,
			strings.Join(row.Keys, ";"),
			strings.Join(row.Values, ";"),
			strconv.FormatBool(row.Hidden),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMarkdown renders rows as a Markdown table.
func ToMarkdown(rows []Row) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Controls\n\n")
	buf.WriteString(fmt.Sprintf("**Rows**: %d\n\n", len(rows)))
	buf.WriteString("| Path | Kind | Keys | Values | Hidden |\n")
	buf.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, row := range rows {
		hidden := ""
		if row.Hidden {
			hidden = "yes"
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			escapeCell(row.Path), row.Kind, escapeCell(strings.Join(row.Keys, ", ")),
			escapeCell(strings.Join(row.Values, ", ")), hidden))
	}

	return buf.Bytes(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ToYAML renders rows as a YAML sequence.
func ToYAML(rows []Row) ([]byte, error) {
	data, err := yaml.Marshal(struct {
		Controls []Row `yaml:"controls"`
	}{rows})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// ToText renders rows as an indented outline.
func ToText(rows []Row) ([]byte, error) {
	var buf bytes.Buffer

	for _, row := range rows {
		buf.WriteString(strings.Repeat("  ", row.Depth))
		buf.WriteString(fmt.Sprintf("%s (%s)", row.Label, row.Kind))
		if len(row.Values) > 0 {
			pairs := make([]string, len(row.Keys))
			for i, k := range row.Keys {
				pairs[i] = k + "=" + row.Values[i]
			}
			buf.WriteString(": " + strings.Join(pairs, ", "))
		}
		if row.Hidden {
			buf.WriteString(" [hidden]")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// Export renders rows in the named format.
func Export(format string, rows []Row) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	switch f {
	case FormatMarkdown:
		return ToMarkdown(rows)
	case FormatCSV:
		return ToCSV(rows)
	case FormatYAML:
		return ToYAML(rows)
	default:
		return ToText(rows)
	}
}

// Write renders rows in the named format to w.
func Write(w io.Writer, format string, rows []Row) error {
	data, err := Export(format, rows)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteExport renders rows in the named format to a file.
//
// Defaults to lacery.{format} as the filename.
func WriteExport(format string, rows []Row, filepath string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	if filepath == "" {
		filepath = "lacery." + string(f)
	}

	data, err := Export(format, rows)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}

	return filepath, nil
}
