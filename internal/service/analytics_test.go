package service

import (
	"testing"
	"time"

	"ledger_service/internal/domain"
	"ledger_service/internal/repository"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tx(userID int64, currency domain.Currency, amount string, status domain.TransactionStatus, created string) *domain.Transaction {
	return &domain.Transaction{
		UserID:    userID,
		Currency:  currency,
		Amount:    decimal.RequireFromString(amount),
		Status:    status,
		CreatedAt: day(created),
	}
}

func TestBuildWeekReport_NewUserWithDeposit(t *testing.T) {
	weekStart := day("2026-08-24")
	weekEnd := day("2026-08-30")

	users := []repository.RegisteredUser{
		{ID: 1, CreatedAt: day("2026-08-25")},
	}
	transactions := []*domain.Transaction{
		tx(1, domain.CurrencyUSD, "100", domain.TransactionProcessed, "2026-08-26"),
	}

	report := buildWeekReport(weekStart, weekEnd, users, transactions)

	if report.NewUsersCount != 1 {
		t.Errorf("new_users_count = %d, want 1", report.NewUsersCount)
	}
	if report.UsersWithDepositCount != 1 {
		t.Errorf("users_with_deposit_count = %d, want 1", report.UsersWithDepositCount)
	}
	if report.DepositAmountUSD != 100.00 {
		t.Errorf("deposit_amount_usd = %v, want 100.00", report.DepositAmountUSD)
	}
	if report.WithdrawAmountUSD != 0 {
		t.Errorf("withdraw_amount_usd = %v, want 0", report.WithdrawAmountUSD)
	}
	if report.TotalTransactionsCount != 1 || report.NonRollbackedTransactionsCnt != 1 {
		t.Errorf("counts = %d/%d, want 1/1",
			report.TotalTransactionsCount, report.NonRollbackedTransactionsCnt)
	}
	if report.WeekStart != "2026-08-24" || report.WeekEnd != "2026-08-30" {
		t.Errorf("week bounds = %s..%s", report.WeekStart, report.WeekEnd)
	}
}

func TestBuildWeekReport_DepositLookupScopedToWindow(t *testing.T) {
	weekStart := day("2026-08-24")
	weekEnd := day("2026-08-30")

	// user registered in window, but their deposit predates it
	users := []repository.RegisteredUser{
		{ID: 1, CreatedAt: day("2026-08-25")},
	}
	transactions := []*domain.Transaction{
		tx(1, domain.CurrencyUSD, "100", domain.TransactionProcessed, "2026-08-20"),
	}

	report := buildWeekReport(weekStart, weekEnd, users, transactions)

	if report.NewUsersCount != 1 {
		t.Errorf("new_users_count = %d, want 1", report.NewUsersCount)
	}
	if report.UsersWithDepositCount != 0 {
		t.Errorf("users_with_deposit_count = %d, want 0", report.UsersWithDepositCount)
	}
	if report.TotalTransactionsCount != 0 {
		t.Errorf("total_transactions_count = %d, want 0", report.TotalTransactionsCount)
	}
}

func TestBuildWeekReport_RollbackedExcludedFromAmounts(t *testing.T) {
	weekStart := day("2026-08-24")
	weekEnd := day("2026-08-30")

	transactions := []*domain.Transaction{
		tx(1, domain.CurrencyUSD, "100", domain.TransactionProcessed, "2026-08-25"),
		tx(1, domain.CurrencyUSD, "40", domain.TransactionRollbacked, "2026-08-25"),
		tx(1, domain.CurrencyUSD, "-30", domain.TransactionProcessed, "2026-08-26"),
		tx(1, domain.CurrencyUSD, "-10", domain.TransactionRollbacked, "2026-08-26"),
	}

	report := buildWeekReport(weekStart, weekEnd, nil, transactions)

	if report.DepositAmountUSD != 100.00 {
		t.Errorf("deposit_amount_usd = %v, want 100.00", report.DepositAmountUSD)
	}
	if report.WithdrawAmountUSD != 30.00 {
		t.Errorf("withdraw_amount_usd = %v, want 30.00", report.WithdrawAmountUSD)
	}
	if report.TotalTransactionsCount != 4 {
		t.Errorf("total_transactions_count = %d, want 4", report.TotalTransactionsCount)
	}
	if report.NonRollbackedTransactionsCnt != 2 {
		t.Errorf("non_rollbacked_transactions_count = %d, want 2", report.NonRollbackedTransactionsCnt)
	}
}

func TestBuildWeekReport_USDConversionAndRounding(t *testing.T) {
	weekStart := day("2026-08-24")
	weekEnd := day("2026-08-30")

	transactions := []*domain.Transaction{
		// 100 EUR * 0.9342 = 93.42
		tx(1, domain.CurrencyEUR, "100", domain.TransactionProcessed, "2026-08-25"),
		// 1.5 DOGE * 0.3627 = 0.54405 -> rounds into the total
		tx(1, domain.CurrencyDOGE, "1.5", domain.TransactionProcessed, "2026-08-25"),
	}

	report := buildWeekReport(weekStart, weekEnd, nil, transactions)

	want := 93.96 // 93.42 + 0.54405 = 93.96405 rounded to 2 places
	if report.DepositAmountUSD != want {
		t.Errorf("deposit_amount_usd = %v, want %v", report.DepositAmountUSD, want)
	}
}

func TestBuildWeekReport_WindowBoundsInclusive(t *testing.T) {
	weekStart := day("2026-08-24")
	weekEnd := day("2026-08-30")

	transactions := []*domain.Transaction{
		tx(1, domain.CurrencyUSD, "10", domain.TransactionProcessed, "2026-08-24"),
		tx(1, domain.CurrencyUSD, "10", domain.TransactionProcessed, "2026-08-30"),
		tx(1, domain.CurrencyUSD, "10", domain.TransactionProcessed, "2026-08-23"),
		tx(1, domain.CurrencyUSD, "10", domain.TransactionProcessed, "2026-08-31"),
	}

	report := buildWeekReport(weekStart, weekEnd, nil, transactions)

	if report.TotalTransactionsCount != 2 {
		t.Errorf("total_transactions_count = %d, want 2 (bounds inclusive)", report.TotalTransactionsCount)
	}
}
