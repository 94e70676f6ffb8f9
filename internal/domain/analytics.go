package domain

// ============================================================
// Dashboard & report read models (computed, never persisted)
// ============================================================

// DashboardSummary is returned by GET /dashboard. Everything here is a
// pure function of the caller's current record set.
type DashboardSummary struct {
	TotalIncome        float64         `json:"totalIncome"`
	TotalExpense       float64         `json:"totalExpense"`
	NetBalance         float64         `json:"netBalance"`
	CategoryBreakdown  []CategoryTotal `json:"categoryBreakdown"`
	DailyExpenses      []DailyPoint    `json:"dailyExpenses"`
	MonthlyTrend       []MonthlyPoint  `json:"monthlyTrend"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
}

// CategoryTotal is one slice of the expense category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Pct      float64 `json:"pct"`
}

// DailyPoint is one day of the expense series. Day is YYYY-MM-DD.
type DailyPoint struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

// MonthlyPoint is one month of the income/expense trend. Month is YYYY-MM.
type MonthlyPoint struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Transaction is a record tagged with its kind, used by the merged views
// (recent transactions, filter page).
type Transaction struct {
	Record
	Type RecordKind `json:"type"`
}

// TransactionFilter narrows the merged transaction listing
// (GET /transactions). Zero values mean "no constraint".
type TransactionFilter struct {
	Type      RecordKind // income, expense, or empty for both
	Category  string     // case-insensitive substring match
	Search    string     // matches description or category
	From      string     // YYYY-MM-DD inclusive
	To        string     // YYYY-MM-DD inclusive
	MinAmount *float64
	MaxAmount *float64
}

// TransactionListResponse is the body for GET /transactions.
type TransactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Matched      int           `json:"matched"`
}
