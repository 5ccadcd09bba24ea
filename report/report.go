// Package report implements the markdown fragments experiment tracking
// posts: escaped run descriptions and parameter tables.
package report

import "fmt"
import "sort"
import "strings"

// Description renders the experiment header plus the escaped run
// description. The body is escaped to survive a markdown cell:
// newlines become <br>, spaces become &nbsp;, square brackets are
// backslashed.
func Description(desc, expID string) string {
	var markdown = "# Experiment " + expID + "\n\n"
	desc = strings.ReplaceAll(desc, "\n", "<br>")
	desc = strings.ReplaceAll(desc, " ", "&nbsp;")
	desc = strings.ReplaceAll(desc, "[", "\\[")
	desc = strings.ReplaceAll(desc, "]", "\\]")
	return markdown + desc
}

// Tables renders a flat parameter map as markdown tables of up to size
// columns each, keys sorted. A size of zero or less means 10 columns.
func Tables(m map[string]interface{}, size int) []string {
	if size <= 0 {
		size = 10
	}
	var keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var tables []string
	for start := 0; start < len(keys); start += size {
		var end = start + size
		if end > len(keys) {
			end = len(keys)
		}
		var chunk = keys[start:end]
		var values = make([]string, len(chunk))
		for i, k := range chunk {
			values[i] = fmt.Sprint(m[k])
		}
		tables = append(tables, Rows(chunk, [][]string{values}))
	}
	return tables
}

// Rows assembles a markdown table from a header and value rows, in the
// same pipe grammar the parameter tables use.
func Rows(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString(strings.Repeat("|-----", len(header)) + "|\n")
	for _, row := range rows {
		for _, col := range row {
			b.WriteString("| " + col + " ")
		}
		b.WriteString("|\n")
	}
	return b.String()
}
