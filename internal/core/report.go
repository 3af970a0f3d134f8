package core

import "sort"

// DailyTotal is the summed hours for one calendar day.
type DailyTotal struct {
	Date  Date
	Hours float64
}

// CategoryTotal is the summed hours for one category.
type CategoryTotal struct {
	Category string
	Hours    float64
}

// Statistics is the overall usage summary.
// AvgDailyHours is the mean of per-day sums, not the mean of raw entries.
type Statistics struct {
	TotalHours    float64
	TotalEntries  int
	AvgDailyHours float64
	MaxDailyHours float64
	FirstDate     Date
	LastDate      Date
}

// Range is an inclusive calendar-date filter. A zero bound leaves that
// side open.
type Range struct {
	From Date
	To   Date
}

// IsZero reports whether the range has no bounds at all.
func (r Range) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether d falls within the range.
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Time.Before(r.From.Time) {
		return false
	}
	if !r.To.IsZero() && d.Time.After(r.To.Time) {
		return false
	}
	return true
}

// DailyTotalsOf reduces entries to per-day sums, ordered by date ascending.
func DailyTotalsOf(entries []Entry) []DailyTotal {
	byDay := make(map[string]float64)
	dates := make(map[string]Date)
	for _, e := range entries {
		key := e.Date.String()
		byDay[key] += e.Hours
		dates[key] = e.Date
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	// ISO dates order lexicographically
	sort.Strings(keys)

	out := make([]DailyTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, DailyTotal{Date: dates[k], Hours: byDay[k]})
	}
	return out
}

// CategoryTotalsOf reduces entries to per-category sums, ordered by total
// descending; ties break on category name for stable output.
func CategoryTotalsOf(entries []Entry) []CategoryTotal {
	byCat := make(map[string]float64)
	for _, e := range entries {
		byCat[e.Category] += e.Hours
	}

	out := make([]CategoryTotal, 0, len(byCat))
	for cat, h := range byCat {
		out = append(out, CategoryTotal{Category: cat, Hours: h})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// StatisticsOf reduces entries to the overall summary. An empty input
// yields the zero value.
func StatisticsOf(entries []Entry) Statistics {
	if len(entries) == 0 {
		return Statistics{}
	}

	stats := Statistics{TotalEntries: len(entries)}
	daily := DailyTotalsOf(entries)
	for _, d := range daily {
		stats.TotalHours += d.Hours
		if d.Hours > stats.MaxDailyHours {
			stats.MaxDailyHours = d.Hours
		}
	}
	stats.AvgDailyHours = stats.TotalHours / float64(len(daily))
	stats.FirstDate = daily[0].Date
	stats.LastDate = daily[len(daily)-1].Date
	return stats
}
