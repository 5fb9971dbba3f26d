// Package table formats feature attributes as a two column ASCII table.
package table

import (
	"fmt"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	keyStyle   = lipgloss.NewStyle().Padding(0, 1)
	valueStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// FromProperties renders the named properties, in order, as
//
//	+-------+-------+
//	| name  | value |
//	+-------+-------+
//
// Keys are left aligned and values right aligned.
func FromProperties(keys []string, props map[string]any) (string, error) {
	if len(keys) == 0 {
		return "", errors.New(errors.ErrEmptyTable,
			"cannot format table - no properties requested")
	}

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v, ok := props[k]
		if !ok {
			return "", errors.Newf(errors.ErrMissingProperty, "property `%s' not found", k).
				WithDetail("property", k)
		}
		rows = append(rows, []string{k, FormatValue(v)})
	}
	return Render(rows), nil
}

// Render draws pre-formatted key/value rows
func Render(rows [][]string) string {
	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		BorderRow(false).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			return valueStyle
		}).
		Rows(rows...)
	return t.String()
}

// FormatValue is the text shown for one property value
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
