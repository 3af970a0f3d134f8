package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"screentime/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today     string
		Threshold string
	}{
		Today:     core.Today().String(),
		Threshold: core.FormatHours(s.thresholdHours),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return
	}

	dateStr := strings.TrimSpace(r.Form.Get("date"))
	date := core.Today()
	if dateStr != "" {
		parsed, err := core.ParseDate(dateStr)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid date, expected YYYY-MM-DD</div>`))
			return
		}
		date = parsed
	}

	hours, err := core.ParseHours(r.Form.Get("hours"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid hours</div>`))
		return
	}

	entry := core.Entry{
		Date:     date,
		Category: sanitizeInput(r.Form.Get("category")),
		Hours:    hours,
		Remarks:  sanitizeInput(r.Form.Get("remarks")),
	}
	if err := entry.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid entry: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	id, err := s.entryWriter.Append(r.Context(), entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Entry append error", "error", err, "category", entry.Category, "hours", entry.Hours)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to save entry</div>`))
		return
	}

	// Trigger a client refresh of the overview and entry list partials.
	w.Header().Set("HX-Trigger", `{"entry:created": {"id": `+strconv.FormatInt(id, 10)+`}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Logged #` + strconv.FormatInt(id, 10) + `: ` +
		template.HTMLEscapeString(entry.Category) +
		` — ` + core.FormatHours(entry.Hours) + `h on ` +
		template.HTMLEscapeString(entry.Date.String()) + `</div>`))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("id")), 10, 64)
	if err != nil || id < 1 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid entry id</div>`))
		return
	}

	removed, err := s.entryDeleter.Delete(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Entry delete error", "error", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to delete entry</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"entry:deleted": {"id": `+strconv.FormatInt(id, 10)+`}}`)
	w.WriteHeader(http.StatusOK)
	if removed {
		_, _ = w.Write([]byte(`<div class="success">Deleted entry #` + strconv.FormatInt(id, 10) + `</div>`))
	} else {
		_, _ = w.Write([]byte(`<div class="notice">Entry #` + strconv.FormatInt(id, 10) + ` was already gone</div>`))
	}
}

type overviewRow struct {
	Name, Hours string
	Width       int
}

type dailyRow struct {
	Date, Hours string
	OverLimit   bool
}

// handleOverview renders the dashboard partial: statistics, per-day
// totals with threshold flags, and per-category totals.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	cctx, cancel := contextWithPartialTimeout(r)
	defer cancel()

	stats, err := s.reportReader.Statistics(cctx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Statistics error", "error", err)
		s.renderOverviewError(w)
		return
	}
	daily, err := s.reportReader.DailyTotals(cctx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Daily totals error", "error", err)
		s.renderOverviewError(w)
		return
	}
	categories, err := s.reportReader.CategoryTotals(cctx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category totals error", "error", err)
		s.renderOverviewError(w)
		return
	}

	var maxHours float64
	var maxName string
	for _, c := range categories {
		if c.Hours > maxHours {
			maxHours = c.Hours
			maxName = c.Category
		}
	}

	data := struct {
		TotalHours    string
		TotalEntries  int
		AvgDailyHours string
		MaxDailyHours string
		AvgOver       bool
		FirstDate     string
		LastDate      string
		Threshold     string
		OverDays      int
		Daily         []dailyRow
		Categories    []overviewRow
		MaxName       string
		MaxHours      string
	}{
		TotalHours:    core.FormatHours(stats.TotalHours),
		TotalEntries:  stats.TotalEntries,
		AvgDailyHours: core.FormatHours(stats.AvgDailyHours),
		MaxDailyHours: core.FormatHours(stats.MaxDailyHours),
		AvgOver:       stats.AvgDailyHours > s.thresholdHours,
		Threshold:     core.FormatHours(s.thresholdHours),
		MaxName:       maxName,
		MaxHours:      core.FormatHours(maxHours),
	}
	if !stats.FirstDate.IsZero() {
		data.FirstDate = stats.FirstDate.String()
		data.LastDate = stats.LastDate.String()
	}

	for _, d := range daily {
		over := d.Hours > s.thresholdHours
		if over {
			data.OverDays++
		}
		data.Daily = append(data.Daily, dailyRow{
			Date:      d.Date.String(),
			Hours:     core.FormatHours(d.Hours),
			OverLimit: over,
		})
	}

	for _, c := range categories {
		width := 0
		if maxHours > 0 && c.Hours > 0 {
			width = int((c.Hours*100 + maxHours/2) / maxHours) // rounded percent
			if width > 0 && width < 2 {                        // ensure visibility for very small values
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Categories = append(data.Categories, overviewRow{
			Name:  c.Category,
			Hours: core.FormatHours(c.Hours),
			Width: width,
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Total: ` + data.TotalHours + `h</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "overview.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "overview.html")
		s.renderOverviewError(w)
	}
}

func (s *Server) renderOverviewError(w http.ResponseWriter) {
	_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Failed to load overview</div></section>`))
}

// handleEntryList renders the entry table partial, optionally filtered
// by from/to query parameters (inclusive, YYYY-MM-DD).
func (s *Server) handleEntryList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	rng, err := parseRange(r)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid date filter, expected YYYY-MM-DD</div>`))
		return
	}

	cctx, cancel := contextWithPartialTimeout(r)
	defer cancel()

	entries, err := s.entryLister.ListEntries(cctx, rng)
	if err != nil {
		slog.ErrorContext(r.Context(), "List entries error", "error", err)
		_, _ = w.Write([]byte(`<section id="entries" class="entries"><div class="placeholder">Failed to load entries</div></section>`))
		return
	}

	type entryRow struct {
		ID       int64
		Date     string
		Category string
		Hours    string
		Remarks  string
	}
	data := struct {
		From, To string
		Rows     []entryRow
	}{}
	if !rng.From.IsZero() {
		data.From = rng.From.String()
	}
	if !rng.To.IsZero() {
		data.To = rng.To.String()
	}
	for _, e := range entries {
		data.Rows = append(data.Rows, entryRow{
			ID:       e.ID,
			Date:     e.Date.String(),
			Category: e.Category,
			Hours:    core.FormatHours(e.Hours),
			Remarks:  e.Remarks,
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="entries" class="entries"><div class="placeholder">` + strconv.Itoa(len(entries)) + ` entries</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "entries.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "entries.html")
		_, _ = w.Write([]byte(`<section id="entries" class="entries"><div class="placeholder">Failed to render entries</div></section>`))
	}
}

// parseRange reads optional from/to query parameters into a core.Range.
func parseRange(r *http.Request) (core.Range, error) {
	var rng core.Range
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Range{}, err
		}
		rng.From = d
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Range{}, err
		}
		rng.To = d
	}
	return rng, nil
}
