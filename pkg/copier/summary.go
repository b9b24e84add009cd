package copier

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

const dryRunPlaceholder = "(dry run)"

type summaryRow struct {
	author string
	source string
	copied string
}

func renderSummary(w io.Writer, rows []summaryRow) {
	table := tablewriter.NewWriter(w)

	table.SetHeader([]string{"#", "Author", "Source", "Copied To"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoWrapText(false)

	for i, row := range rows {
		copied := row.copied
		if copied == "" {
			copied = dryRunPlaceholder
		}
		table.Append([]string{strconv.Itoa(i + 1), row.author, row.source, copied})
	}

	table.Render()
}
