package main

import (
	"os"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"stage-lab/domain"
)

// printOutcomes renders a delivery result as a compact table, one row per
// resolved recipient. Recipients absent from the registry produce no row.
func printOutcomes(sender domain.Identifier, w domain.Word, outcomes []domain.Outcome) {
	header := color.New(color.BgBlack, color.FgGreen).
		Render("Delivery report for " + w.Render() + " from " + sender.String())
	os.Stdout.WriteString(header + "\n")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Recipient", "Status", "Error"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, outcome := range outcomes {
		errText := ""
		if outcome.Err != nil {
			errText = outcome.Err.Error()
		}
		status := string(outcome.Status)
		if outcome.Succeeded() {
			status = color.Green.Render(status)
		} else {
			status = color.Red.Render(status)
		}
		table.Append([]string{outcome.Recipient.String(), status, errText})
	}
	table.Render()
}
