package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable prints data as a boxed table whose first row is the header.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.WithWriter(writer).Printfln("failed to render table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

// PrintSection prints a heading followed by a table.
func PrintSection(title string, data [][]string, writer io.Writer) {
	fmt.Fprintln(writer, pterm.DefaultSection.Sprint(title))

	if len(data) == 1 && len(data[0]) == 1 {
		fmt.Fprintln(writer, data[0][0])
		return
	}

	PrintTable(data, writer)
}
