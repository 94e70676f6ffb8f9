package service

import (
	"sort"
	"strings"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
)

// Pure aggregation over record sets. Every function here is deterministic
// and side-effect free; the dashboard and report services compose them.

// SumAmounts returns the total amount across records.
func SumAmounts(records []domain.Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

// NetBalance is total income minus total expense.
func NetBalance(income, expense []domain.Record) float64 {
	return SumAmounts(income) - SumAmounts(expense)
}

// CategoryBreakdown groups records by category and returns totals sorted
// by amount descending. Pct is each category's share of the overall total;
// when the total is zero every share is zero, never NaN.
func CategoryBreakdown(records []domain.Record) []domain.CategoryTotal {
	byCategory := make(map[string]*domain.CategoryTotal)
	var overall float64

	for _, r := range records {
		overall += r.Amount
		ct, ok := byCategory[r.Category]
		if !ok {
			ct = &domain.CategoryTotal{Category: r.Category}
			byCategory[r.Category] = ct
		}
		ct.Total += r.Amount
		ct.Count++
	}

	out := make([]domain.CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		if overall != 0 {
			ct.Pct = ct.Total / overall * 100
		}
		out = append(out, *ct)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DailyTotals buckets records by calendar day (UTC) and returns the series
// in chronological order.
func DailyTotals(records []domain.Record) []domain.DailyPoint {
	byDay := make(map[string]float64)
	for _, r := range records {
		day := r.Date.UTC().Format("2006-01-02")
		byDay[day] += r.Amount
	}

	out := make([]domain.DailyPoint, 0, len(byDay))
	for day, amount := range byDay {
		out = append(out, domain.DailyPoint{Day: day, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// MonthlyTrend buckets income and expense by calendar month (UTC) and
// returns the combined trend in chronological order.
func MonthlyTrend(income, expense []domain.Record) []domain.MonthlyPoint {
	byMonth := make(map[string]*domain.MonthlyPoint)

	point := func(month string) *domain.MonthlyPoint {
		p, ok := byMonth[month]
		if !ok {
			p = &domain.MonthlyPoint{Month: month}
			byMonth[month] = p
		}
		return p
	}

	for _, r := range income {
		point(r.Date.UTC().Format("2006-01")).Income += r.Amount
	}
	for _, r := range expense {
		point(r.Date.UTC().Format("2006-01")).Expense += r.Amount
	}

	out := make([]domain.MonthlyPoint, 0, len(byMonth))
	for _, p := range byMonth {
		p.Balance = p.Income - p.Expense
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// MergeTransactions tags and merges both record sets into a single list
// sorted by date descending (most recent first).
func MergeTransactions(income, expense []domain.Record) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(income)+len(expense))
	for _, r := range income {
		out = append(out, domain.Transaction{Record: r, Type: domain.KindIncome})
	}
	for _, r := range expense {
		out = append(out, domain.Transaction{Record: r, Type: domain.KindExpense})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RecentTransactions returns at most n of the merged transactions.
func RecentTransactions(income, expense []domain.Record, n int) []domain.Transaction {
	merged := MergeTransactions(income, expense)
	if len(merged) > n {
		merged = merged[:n]
	}
	return merged
}

// FilterTransactions applies the filter to an already-merged list.
func FilterTransactions(txs []domain.Transaction, f *domain.TransactionFilter) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if matchesFilter(&tx, f) {
			out = append(out, tx)
		}
	}
	return out
}

func matchesFilter(tx *domain.Transaction, f *domain.TransactionFilter) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Category != "" && !strings.Contains(strings.ToLower(tx.Category), strings.ToLower(f.Category)) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(tx.Description), q) &&
			!strings.Contains(strings.ToLower(tx.Category), q) {
			return false
		}
	}
	if f.From != "" {
		if from, err := time.Parse("2006-01-02", f.From); err == nil && tx.Date.Before(from) {
			return false
		}
	}
	if f.To != "" {
		// inclusive: anything before the end of the named day matches
		if to, err := time.Parse("2006-01-02", f.To); err == nil && !tx.Date.Before(to.AddDate(0, 0, 1)) {
			return false
		}
	}
	if f.MinAmount != nil && tx.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && tx.Amount > *f.MaxAmount {
		return false
	}
	return true
}
