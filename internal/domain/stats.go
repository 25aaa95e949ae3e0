package domain

// StatsOverview holds system-wide totals for the manager dashboard.
type StatsOverview struct {
	TotalCustomers      int64  `json:"total_customers"`
	TotalAccounts       int64  `json:"total_accounts"`
	FrozenAccounts      int64  `json:"frozen_accounts"`
	TotalBalance        string `json:"total_balance"`
	TotalTransactions   int64  `json:"total_transactions"`
	TotalDeposits       string `json:"total_deposits"`
	TotalWithdrawals    string `json:"total_withdrawals"`
	PendingTransactions int64  `json:"pending_transactions"`
	TodayTransactions   int64  `json:"today_transactions"`
	LargeTransactions   int64  `json:"large_transactions"`
}

// PeriodReport holds settled transaction sums over a reporting period.
type PeriodReport struct {
	Period       string `json:"period"`
	Transactions int64  `json:"transactions"`
	Deposits     string `json:"deposits"`
	Withdrawals  string `json:"withdrawals"`
}
