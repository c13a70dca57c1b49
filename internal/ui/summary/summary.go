// Package summary renders the table of bundles printed after a build.
package summary

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/olekukonko/tablewriter"
	"go.trai.ch/ngbuild/internal/core/ports"
)

// Render returns a table of files, largest first, with their total size.
// It returns an empty string when there is nothing to list.
func Render(files []ports.OutputFile) string {
	if len(files) == 0 {
		return ""
	}

	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b ports.OutputFile) int {
		if c := cmp.Compare(b.Bytes, a.Bytes); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Output file", "Raw size"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("|")
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	total := 0
	for _, f := range sorted {
		table.Append([]string{f.Name, FormatSize(f.Bytes)})
		total += f.Bytes
	}
	table.SetFooter([]string{fmt.Sprintf("%d files", len(sorted)), FormatSize(total)})
	table.Render()

	return buf.String()
}

// FormatSize prints n bytes in decimal units.
func FormatSize(n int) string {
	switch {
	case n < 1000:
		return fmt.Sprintf("%d bytes", n)
	case n < 1000*1000:
		return fmt.Sprintf("%.2f kB", float64(n)/1000)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1000*1000))
	}
}
