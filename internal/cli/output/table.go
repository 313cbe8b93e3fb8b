// Package output renders CLI command results.
package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// KeyValueTable writes label/value pairs as a borderless two-column table,
// in the order given.
func KeyValueTable(w io.Writer, pairs [][2]string) error {
	table := newPlainTable(w)
	table.SetColumnSeparator(":")
	for _, pair := range pairs {
		table.Append([]string{pair[0], pair[1]})
	}
	table.Render()
	return nil
}

// HeadedTable writes rows under a header line.
func HeadedTable(w io.Writer, headers []string, rows [][]string) error {
	table := newPlainTable(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(true)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	return nil
}

// newPlainTable configures the undecorated style shared by all command
// output: no borders, no separators, left alignment.
func newPlainTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}
