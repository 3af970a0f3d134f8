package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"screentime/internal/core"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show aggregate usage report",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "Output format: text, md, csv, json")
}

func runReport(cmd *cobra.Command, args []string) error {
	result, cfg, err := openBackend(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer closeBackend(result)

	b := result.Backend
	stats, err := b.Statistics(cmd.Context())
	if err != nil {
		return err
	}
	daily, err := b.DailyTotals(cmd.Context())
	if err != nil {
		return err
	}
	categories, err := b.CategoryTotals(cmd.Context())
	if err != nil {
		return err
	}

	switch reportFormat {
	case "json":
		return writeReportJSON(os.Stdout, stats, daily, categories, cfg.ThresholdHours)
	case "csv":
		writeReportCSV(os.Stdout, categories)
		return nil
	case "md":
		writeReportMarkdown(os.Stdout, stats, daily, categories, cfg.ThresholdHours)
		return nil
	case "text", "":
		writeReportText(os.Stdout, stats, daily, categories, cfg.ThresholdHours)
		return nil
	default:
		return fmt.Errorf("unknown format %q: must be one of [text md csv json]", reportFormat)
	}
}

func writeReportText(w io.Writer, stats core.Statistics, daily []core.DailyTotal, categories []core.CategoryTotal, threshold float64) {
	if stats.TotalEntries == 0 {
		fmt.Fprintln(w, "No usage logged yet.")
		return
	}

	fmt.Fprintf(w, "Total:    %sh over %d entries\n", core.FormatHours(stats.TotalHours), stats.TotalEntries)
	fmt.Fprintf(w, "Average:  %sh per day\n", core.FormatHours(stats.AvgDailyHours))
	fmt.Fprintf(w, "Max day:  %sh\n", core.FormatHours(stats.MaxDailyHours))
	fmt.Fprintf(w, "Range:    %s — %s\n", stats.FirstDate, stats.LastDate)

	fmt.Fprintln(w, "\nBy day")
	fmt.Fprintln(w, "--------------------------------")
	for _, d := range daily {
		flag := ""
		if d.Hours > threshold {
			flag = fmt.Sprintf("  ⚠ over %sh limit", core.FormatHours(threshold))
		}
		fmt.Fprintf(w, "%s  %6sh%s\n", d.Date, core.FormatHours(d.Hours), flag)
	}

	fmt.Fprintln(w, "\nBy category")
	fmt.Fprintln(w, "--------------------------------")
	for _, c := range categories {
		fmt.Fprintf(w, "%-20s %6sh\n", c.Category, core.FormatHours(c.Hours))
	}

	if stats.AvgDailyHours > threshold {
		fmt.Fprintf(w, "\n⚠ Average daily usage exceeds the %sh threshold. Consider reducing usage.\n",
			core.FormatHours(threshold))
	}
}

func writeReportMarkdown(w io.Writer, stats core.Statistics, daily []core.DailyTotal, categories []core.CategoryTotal, threshold float64) {
	if stats.TotalEntries == 0 {
		fmt.Fprintln(w, "No usage logged yet.")
		return
	}

	fmt.Fprintf(w, "Screen time %s — %s\n", stats.FirstDate, stats.LastDate)
	fmt.Fprintln(w, "--------------------------------")
	for _, d := range daily {
		flag := ""
		if d.Hours > threshold {
			flag = " ⚠"
		}
		fmt.Fprintf(w, "%-20s%6sh%s\n", d.Date, core.FormatHours(d.Hours), flag)
	}
	fmt.Fprintln(w, "--------------------------------")
	for _, c := range categories {
		fmt.Fprintf(w, "%-20s%6sh\n", c.Category, core.FormatHours(c.Hours))
	}
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "%-20s%6sh\n", "Total", core.FormatHours(stats.TotalHours))
	fmt.Fprintf(w, "%-20s%6sh\n", "Average/day", core.FormatHours(stats.AvgDailyHours))
	fmt.Fprintf(w, "%-20s%6sh\n", "Max day", core.FormatHours(stats.MaxDailyHours))
	if stats.AvgDailyHours > threshold {
		fmt.Fprintf(w, "\n⚠ Average daily usage exceeds the %sh threshold.\n", core.FormatHours(threshold))
	}
}

func writeReportCSV(w io.Writer, categories []core.CategoryTotal) {
	fmt.Fprintln(w, "category,hours")
	for _, c := range categories {
		fmt.Fprintf(w, "%s,%s\n", c.Category, core.FormatHours(c.Hours))
	}
}

func writeReportJSON(w io.Writer, stats core.Statistics, daily []core.DailyTotal, categories []core.CategoryTotal, threshold float64) error {
	type dailyOut struct {
		Date      string  `json:"date"`
		Hours     float64 `json:"hours"`
		OverLimit bool    `json:"over_limit"`
	}
	type categoryOut struct {
		Category string  `json:"category"`
		Hours    float64 `json:"hours"`
	}
	out := struct {
		TotalHours       float64       `json:"total_hours"`
		TotalEntries     int           `json:"total_entries"`
		AvgDailyHours    float64       `json:"avg_daily_hours"`
		MaxDailyHours    float64       `json:"max_daily_hours"`
		FirstDate        string        `json:"first_date,omitempty"`
		LastDate         string        `json:"last_date,omitempty"`
		ThresholdHours   float64       `json:"threshold_hours"`
		AvgOverThreshold bool          `json:"avg_over_threshold"`
		Daily            []dailyOut    `json:"daily"`
		Categories       []categoryOut `json:"categories"`
	}{
		TotalHours:       stats.TotalHours,
		TotalEntries:     stats.TotalEntries,
		AvgDailyHours:    stats.AvgDailyHours,
		MaxDailyHours:    stats.MaxDailyHours,
		ThresholdHours:   threshold,
		AvgOverThreshold: stats.AvgDailyHours > threshold,
		Daily:            []dailyOut{},
		Categories:       []categoryOut{},
	}
	if !stats.FirstDate.IsZero() {
		out.FirstDate = stats.FirstDate.String()
		out.LastDate = stats.LastDate.String()
	}
	for _, d := range daily {
		out.Daily = append(out.Daily, dailyOut{
			Date:      d.Date.String(),
			Hours:     d.Hours,
			OverLimit: d.Hours > threshold,
		})
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, categoryOut{Category: c.Category, Hours: c.Hours})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
