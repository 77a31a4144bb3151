// Package output implements the three feature-row formats the `extract`
// CLI can emit over engine.Engine.Features(): a single-line separated
// value row (csv), a newline-per-key dictionary (dict), and a
// three-column human table (pp). None of these are general-purpose
// serializers — values are rendered in Go's shortest round-trip decimal
// form, and the key order is always the accumulator's own lexicographic
// SortedKeys.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Format names one of the three supported output formats.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatDict Format = "dict"
	FormatPP   Format = "pp"
)

// Describer resolves a feature key to its human-readable description
// for the pp format, matching feature.Descriptions's shape without this
// package depending on feature directly (any func(string) string can be
// substituted).
type Describer func(key string) string

// Write renders keys/values (already in the desired output order) to w
// in format, using describe to resolve pp's DESCRIPTION column. sep is
// only consulted for FormatCSV; other formats ignore it.
func Write(w io.Writer, format Format, keys []string, values map[string]float64, sep byte, describe Describer) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, keys, values, sep)
	case FormatDict:
		return writeDict(w, keys, values)
	case FormatPP:
		return writePP(w, keys, values, describe)
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}
}

// formatValue renders v in the shortest decimal form that round-trips
// to the same float64 ('g' with precision -1): integral counts print as
// 42, and a ratio of 1/3 prints as 0.3333333333333333.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeCSV emits one line: values only, in key order, joined by sep. No
// header, no RFC4180 quoting — every value is a plain number, so the
// quoting machinery of encoding/csv buys nothing here.
func writeCSV(w io.Writer, keys []string, values map[string]float64, sep byte) error {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = formatValue(values[k])
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, string(sep)))
	return err
}

// writeDict emits one "key=value" line per key, in key order.
func writeDict(w io.Writer, keys []string, values map[string]float64) error {
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, formatValue(values[k])); err != nil {
			return err
		}
	}
	return nil
}

// writePP emits a three-column KEY / VALUE / DESCRIPTION table.
func writePP(w io.Writer, keys []string, values map[string]float64, describe Describer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tDESCRIPTION")
	for _, k := range keys {
		desc := ""
		if describe != nil {
			desc = describe(k)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k, formatValue(values[k]), desc)
	}
	return tw.Flush()
}

// ParseFormat validates a CLI-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatDict, FormatPP:
		return Format(s), nil
	default:
		return "", fmt.Errorf("output: unsupported format %q (want csv, dict, or pp)", s)
	}
}
