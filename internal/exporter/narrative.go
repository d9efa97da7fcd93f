package exporter

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"energyreport/internal/dataprocessing"
	"energyreport/pkg/contracts/domain"
)

const narrativeRule = "---------------------------------------"

// Narrative holds the figures of the executive summary
type Narrative struct {
	Title      string
	Unit       string
	GroupLabel string

	Total      float64
	Top        domain.GroupSummary
	HasTop     bool
	Peak       domain.Record
	HasPeak    bool
	GrowthRate float64

	Summaries []domain.GroupSummary
}

// BuildNarrative computes the narrative figures from the cleaned table and
// the aggregates. The growth rate follows the merged daily totals.
func BuildNarrative(table domain.CleanTable, agg *domain.Aggregates, title, unit, groupLabel string) Narrative {
	n := Narrative{
		Title:      title,
		Unit:       unit,
		GroupLabel: groupLabel,
	}
	if agg == nil {
		return n
	}

	n.Summaries = agg.Summaries
	n.Total = dataprocessing.GrandTotal(agg.Summaries)
	n.Top, n.HasTop = dataprocessing.HighestTotal(agg.Summaries)
	n.Peak, n.HasPeak = dataprocessing.GlobalPeak(table)
	if daily, ok := agg.MergedFor(dataprocessing.DailySum); ok {
		n.GrowthRate = dataprocessing.AverageGrowthRate(daily)
	}
	return n
}

// TrendStatement describes the growth rate in words
func (n Narrative) TrendStatement() string {
	verb := "an average change of"
	if n.GrowthRate > 0 {
		verb = "an average growth of"
	}
	return fmt.Sprintf("Daily consumption shows %s **%.2f%%**.", verb, math.Abs(n.GrowthRate))
}

// Render produces the report text. Sections always appear in the same
// order: total, top group, peak event, trend, detail table.
func (n Narrative) Render() (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "--- %s ---\n\n", n.Title)
	fmt.Fprintf(&b, "1. Total Consumption: %s\n", withUnit(formatFloat(n.Total), n.Unit))

	if n.HasTop {
		fmt.Fprintf(&b, "2. Highest-Consuming %s: **%s** (%s)\n",
			n.GroupLabel, n.Top.Group, withUnit(formatFloat(n.Top.Total), n.Unit))
	} else {
		fmt.Fprintf(&b, "2. Highest-Consuming %s: %s\n", n.GroupLabel, domain.NotAvailable)
	}

	if n.HasPeak {
		fmt.Fprintf(&b, "3. Peak Load Event: **%s** occurred at %s (%s %s)\n",
			withUnit(formatFloat(n.Peak.Value), n.Unit),
			n.Peak.Timestamp.Format(peakTimeLayout),
			n.GroupLabel, n.Peak.Group)
	} else {
		fmt.Fprintf(&b, "3. Peak Load Event: %s\n", domain.NotAvailable)
	}

	fmt.Fprintf(&b, "4. Weekly/Daily Trends: %s\n", n.TrendStatement())
	b.WriteString(narrativeRule + "\n\n")

	fmt.Fprintf(&b, "Detailed %s Summaries:\n", n.GroupLabel)
	if err := n.writeDetailTable(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (n Narrative) writeDetailTable(b *strings.Builder) error {
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(summaryHeaders(n.GroupLabel), "\t")+"\t")
	for _, s := range n.Summaries {
		fmt.Fprintln(tw, strings.Join(summaryRow(s), "\t")+"\t")
	}
	return tw.Flush()
}
