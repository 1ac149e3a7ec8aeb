package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/simaogato/wealthflow-projection/internal/domain"
	"github.com/simaogato/wealthflow-projection/internal/projection"
)

type progressCmd struct {
	snapshot snapshotFlags
}

func (*progressCmd) Name() string     { return "progress" }
func (*progressCmd) Synopsis() string { return "compare current wealth with the objective plan" }
func (*progressCmd) Usage() string {
	return `wealthctl progress [-snapshot <file>] [-today <date>] [-currency <code>]

  Prints the insight report: current and theoretical wealth, the delta between
  them, required and historical monthly investment, and a trajectory status.
`
}

func (c *progressCmd) SetFlags(f *flag.FlagSet) { c.snapshot.register(f) }

func (c *progressCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, today, err := c.snapshot.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report := snap.Progress(today)
	if report == nil {
		fmt.Println("No transactions yet: nothing to report.")
		return subcommands.ExitSuccess
	}

	renderProgress(os.Stdout, report, c.snapshot.currency)
	return subcommands.ExitSuccess
}

func renderProgress(out io.Writer, r *projection.InsightReport, currency string) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Status\t%s\n", r.Status.Level)
	fmt.Fprintf(w, "\t%s\n", r.Status.Message)
	fmt.Fprintf(w, "Current wealth\t%s\n", formatMoney(r.CurrentWealth, currency))
	fmt.Fprintf(w, "Theoretical wealth\t%s\n", formatMoney(r.TheoreticalWealth, currency))
	fmt.Fprintf(w, "Delta\t%s\n", formatPercent(r.DeltaPercent))
	fmt.Fprintf(w, "Required monthly investment\t%s\n", formatMoney(r.RequiredMonthlyInvestment, currency))
	fmt.Fprintf(w, "Historical monthly investment\t%s\n", formatMoney(r.HistoricalMonthlyInvestment, currency))
	fmt.Fprintf(w, "Realized CAGR\t%s\n", formatPercent(r.RealizedCAGR))
	w.Flush()
}

type chartCmd struct {
	snapshot    snapshotFlags
	rangeKey    string
	granularity string
	asJSON      bool
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "print the historical and objective series for a display range" }
func (*chartCmd) Usage() string {
	return `wealthctl chart [-snapshot <file>] [-today <date>] [-range 3M|6M|1Y|3Y|MAX] [-granularity monthly|weekly] [-json]

  Prints one row per bucket date with the historical wealth (up to today), the
  objective curve and its capital/interest split.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.snapshot.register(f)
	f.StringVar(&c.rangeKey, "range", "1Y", "Display range (3M, 6M, 1Y, 3Y, MAX)")
	f.StringVar(&c.granularity, "granularity", "", "Override the range granularity (monthly, weekly)")
	f.BoolVar(&c.asJSON, "json", false, "Print the series as JSON")
}

func (c *chartCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, ok := projection.LookupRange(c.rangeKey)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown range %q\n", c.rangeKey)
		return subcommands.ExitUsageError
	}
	if c.granularity != "" {
		r.Granularity = projection.ParseGranularity(c.granularity)
	}

	snap, today, err := c.snapshot.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	chart := snap.Chart(r, today)
	if c.asJSON {
		if err := writeChartJSON(os.Stdout, chart); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	renderChart(os.Stdout, chart, c.snapshot.currency)
	return subcommands.ExitSuccess
}

type pointJSON struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

func toPointsJSON(points []domain.ChartPoint) []pointJSON {
	out := make([]pointJSON, 0, len(points))
	for _, p := range points {
		out = append(out, pointJSON{Time: p.TimeKey(), Value: p.Value})
	}
	return out
}

func writeChartJSON(out io.Writer, chart projection.Chart) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string][]pointJSON{
		"historical": toPointsJSON(chart.Historical),
		"objective":  toPointsJSON(chart.Objective),
		"capital":    toPointsJSON(chart.Capital),
		"interest":   toPointsJSON(chart.Interest),
	})
}

func renderChart(out io.Writer, chart projection.Chart, currency string) {
	historical := make(map[string]float64, len(chart.Historical))
	for _, p := range chart.Historical {
		historical[p.TimeKey()] = p.Value
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Date\tHistorical\tObjective\tCapital\tInterest\t")
	for i, p := range chart.Objective {
		hist := ""
		if v, ok := historical[p.TimeKey()]; ok {
			hist = formatMoney(v, currency)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			p.TimeKey(),
			hist,
			formatMoney(p.Value, currency),
			formatMoney(chart.Capital[i].Value, currency),
			formatMoney(chart.Interest[i].Value, currency),
		)
	}
	w.Flush()
}

type holdingsCmd struct {
	snapshot snapshotFlags
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list positions with cost basis and unrealized gain" }
func (*holdingsCmd) Usage() string {
	return `wealthctl holdings [-snapshot <file>] [-today <date>] [-currency <code>]

  Lists every traded asset with its net quantity, weighted-average cost,
  market value at the current price and unrealized gain.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) { c.snapshot.register(f) }

func (c *holdingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, today, err := c.snapshot.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	renderHoldings(os.Stdout, snap, today, c.snapshot.currency)
	return subcommands.ExitSuccess
}

func renderHoldings(out io.Writer, snap *projection.Snapshot, today time.Time, currency string) {
	names := make(map[uuid.UUID]string, len(snap.Assets))
	for _, a := range snap.Assets {
		names[a.ID] = a.Name
	}

	var total, invested float64
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Asset\tQuantity\tAvg cost\tInvested\tMarket value\tGain")
	for _, pos := range projection.Holdings(today, snap.Assets, snap.Transactions) {
		fmt.Fprintf(w, "%s\t%g\t%s\t%s\t%s\t%s\n",
			names[pos.AssetID],
			pos.Quantity,
			formatMoney(pos.AverageCost, currency),
			formatMoney(pos.Invested, currency),
			formatMoney(pos.MarketValue, currency),
			formatMoney(pos.UnrealizedGain, currency),
		)
		total += pos.MarketValue
		invested += pos.Invested
	}
	fmt.Fprintf(w, "Total\t\t\t%s\t%s\t%s\n",
		formatMoney(invested, currency),
		formatMoney(total, currency),
		formatMoney(total-invested, currency),
	)
	w.Flush()
}
