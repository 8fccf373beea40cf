package report

import (
	"fmt"
	"io"
	"os"

	"imbalance-report/internal/analysis"
	"imbalance-report/internal/model"

	"github.com/olekukonko/tablewriter"
)

// Console prints the daily report to a writer.
type Console struct {
	out io.Writer
}

// NewConsole creates a reporter that writes to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter creates a reporter for tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Report prints the day summary and the top periods table.
func (c *Console) Report(sum analysis.DaySummary, top []model.SettlementPeriodRecord) {
	fmt.Fprintf(c.out, "Settlement date %s — %d periods\n", sum.SettlementDate, sum.Count)
	if len(sum.MissingPeriods) > 0 {
		fmt.Fprintf(c.out, "Missing settlement periods: %v\n", sum.MissingPeriods)
	}
	fmt.Fprintf(c.out, "Total daily imbalance cost = £%.2f\n", sum.TotalImbalanceCost)
	fmt.Fprintf(c.out, "System sell price £/MWh: min %.2f  mean %.2f  max %.2f\n",
		sum.MinSellPrice, sum.MeanSellPrice, sum.MaxSellPrice)
	fmt.Fprintf(c.out, "Peak half hour: period %d (hour %d, |NIV| %.2f MWh)\n",
		sum.PeakPeriod, sum.PeakPeriodHour, sum.PeakPeriodVolume)
	fmt.Fprintf(c.out, "Peak hour by summed |NIV|: %02d:00 UTC (%.2f MWh)\n",
		sum.PeakHour, sum.PeakHourAbsVolume)

	if len(top) == 0 {
		return
	}
	fmt.Fprintf(c.out, "\nTop %d periods by absolute net imbalance volume:\n", len(top))
	c.printTable(top)
}

func (c *Console) printTable(top []model.SettlementPeriodRecord) {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Period", "Start", "Sell £/MWh", "Buy £/MWh", "NIV MWh", "Cost £")

	for i, r := range top {
		table.Append(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Period),
			r.TimeLabel,
			fmt.Sprintf("%.2f", r.SystemSellPrice),
			fmt.Sprintf("%.2f", r.SystemBuyPrice),
			fmt.Sprintf("%.2f", r.NetImbalanceVolume),
			fmt.Sprintf("%.2f", r.ImbalanceCost),
		)
	}

	table.Render()
}
