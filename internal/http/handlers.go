package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"budget/internal/core"
)

// View models handed to the templates. The handlers own all formatting;
// the core stays free of display concerns.
type (
	overviewRow struct {
		Category   string
		Icon       string
		Income     bool
		Total      string
		NoActivity bool
	}

	overviewGroup struct {
		Name     string
		Excluded bool
		Rows     []overviewRow
	}

	overviewView struct {
		Year     int
		Month    int
		Currency string
		Groups   []overviewGroup
	}

	listLine struct {
		Icon     string
		Payee    string
		Category string
		Amount   string
		Currency string
		Excluded bool
	}

	listDay struct {
		Heading string
		Lines   []listLine
	}

	listView struct {
		Year  int
		Month int
		Days  []listDay
	}
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	p := periodFromQuery(r)
	prev, next := p.Previous(), p.Next()
	data := struct {
		Year      int
		Month     int
		MonthName string
		PrevYear  int
		PrevMonth int
		NextYear  int
		NextMonth int
	}{
		Year:      p.Year,
		Month:     p.Month,
		MonthName: time.Month(p.Month).String(),
		PrevYear:  prev.Year,
		PrevMonth: prev.Month,
		NextYear:  next.Year,
		NextMonth: next.Month,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleOverview renders the per-category monthly totals partial.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	p := periodFromQuery(r)

	view, err := s.getOverview(r.Context(), p)
	if err != nil {
		slog.ErrorContext(r.Context(), "Overview error", "error", err, "year", p.Year, "month", p.Month)
		http.Error(w, "failed to load overview", http.StatusInternalServerError)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "overview.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Overview template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleTransactions renders the chronological transaction list partial.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	p := periodFromQuery(r)

	view, err := s.getList(r.Context(), p)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err, "year", p.Year, "month", p.Month)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "transactions.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Transactions template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) getOverview(ctx context.Context, p core.Period) (overviewView, error) {
	key := p.Prefix()
	if view, found := s.overviewCache.Get(key); found {
		return view, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	totals, err := s.store.CategoryTotals(cctx, p.Prefix())
	if err != nil {
		return overviewView{}, fmt.Errorf("category totals (year=%d, month=%d): %w", p.Year, p.Month, err)
	}

	view := s.buildOverview(p, totals)
	s.overviewCache.Set(key, view)
	return view, nil
}

func (s *Server) buildOverview(p core.Period, totals []core.CategoryTotal) overviewView {
	byCategory := make(map[string]core.CategoryTotal, len(totals))
	for _, t := range totals {
		byCategory[t.Category] = t
	}

	tax := s.budget.Taxonomy
	view := overviewView{Year: p.Year, Month: p.Month, Currency: tax.Currency}
	for _, g := range tax.Groups {
		group := overviewGroup{Name: g.DisplayName(), Excluded: g.Excluded()}
		for _, category := range g.Categories {
			total := byCategory[category].Total // zero when absent
			group.Rows = append(group.Rows, overviewRow{
				Category:   category,
				Icon:       tax.Icon(category),
				Income:     tax.IsIncome(category),
				Total:      core.FormatAmount(total),
				NoActivity: total.IsZero(),
			})
			delete(byCategory, category)
		}
		view.Groups = append(view.Groups, group)
	}

	// Categories on transactions but absent from the taxonomy still show,
	// visibly, in a trailing group.
	if len(byCategory) > 0 {
		group := overviewGroup{Name: "Uncategorized"}
		names := make([]string, 0, len(byCategory))
		for name := range byCategory {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			group.Rows = append(group.Rows, overviewRow{
				Category: name,
				Icon:     tax.Icon(name),
				Total:    core.FormatAmount(byCategory[name].Total),
			})
		}
		view.Groups = append(view.Groups, group)
	}
	return view
}

func (s *Server) getList(ctx context.Context, p core.Period) (listView, error) {
	key := p.Prefix()
	if view, found := s.listCache.Get(key); found {
		return view, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	txs, err := s.store.Transactions(cctx, p.Prefix())
	if err != nil {
		return listView{}, fmt.Errorf("list transactions (year=%d, month=%d): %w", p.Year, p.Month, err)
	}

	view := s.buildList(p, txs)
	s.listCache.Set(key, view)
	return view, nil
}

func (s *Server) buildList(p core.Period, txs []core.Transaction) listView {
	tax := s.budget.Taxonomy

	byDate := make(map[string][]core.Transaction)
	for _, t := range txs {
		byDate[t.Date] = append(byDate[t.Date], t)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	// Newest first; ISO dates sort lexically.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	view := listView{Year: p.Year, Month: p.Month}
	for _, date := range dates {
		day := listDay{Heading: formatDateHeading(date)}
		for _, t := range byDate[date] {
			currency := tax.Currency
			if account, ok := core.AccountOf(s.budget.Accounts, t.Account); ok {
				currency = account.Currency
			}
			day.Lines = append(day.Lines, listLine{
				Icon:     tax.Icon(t.Category),
				Payee:    cleanPayee(t.Payee),
				Category: t.Category,
				Amount:   core.FormatAmount(t.Amount),
				Currency: currency,
				Excluded: tax.IsExcluded(t.Category),
			})
		}
		view.Days = append(view.Days, day)
	}
	return view
}

// cleanPayee lowercases the raw statement payee and strips everything but
// letters and digits, the same normalization the list always displayed.
func cleanPayee(payee string) string {
	payee = strings.ToLower(payee)
	var b strings.Builder
	for _, r := range payee {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// formatDateHeading renders an ISO date as a readable heading. Dates the
// pipeline passed through unvalidated fall back to the raw string.
func formatDateHeading(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2 January 2006")
}
