package service

import (
	"context"
	"time"

	"ledger_service/internal/domain"
	"ledger_service/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// WeekReport aggregates one trailing 7-day window of ledger activity
type WeekReport struct {
	WeekStart                    string  `json:"week_start"`
	WeekEnd                      string  `json:"week_end"`
	NewUsersCount                int     `json:"new_users_count"`
	UsersWithDepositCount        int     `json:"users_with_deposit_count"`
	DepositAmountUSD             float64 `json:"deposit_amount_usd"`
	WithdrawAmountUSD            float64 `json:"withdraw_amount_usd"`
	TotalTransactionsCount       int     `json:"total_transactions_count"`
	NonRollbackedTransactionsCnt int     `json:"non_rollbacked_transactions_count"`
}

// AnalyticsService computes weekly aggregates over the ledger. It is
// strictly read-only: rows are loaded once and every window is computed
// in memory.
type AnalyticsService struct {
	userRepo        *repository.UserRepository
	transactionRepo *repository.TransactionRepository
}

func NewAnalyticsService(db *pgxpool.Pool) *AnalyticsService {
	return &AnalyticsService{
		userRepo:        repository.NewUserRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

// GenerateWeeklyReports returns one report per trailing 7-day window
// anchored on today, oldest week first. Window N covers
// [today - 7N - 6 days, today - 7N days], dates inclusive.
func (s *AnalyticsService) GenerateWeeklyReports(ctx context.Context, weekCount int) ([]WeekReport, error) {
	if weekCount <= 0 {
		weekCount = 52
	}

	today := dateOnly(time.Now().UTC())
	oldest := today.AddDate(0, 0, -((weekCount-1)*7 + 6))

	users, err := s.userRepo.ListCreatedSince(ctx, oldest)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.ListCreatedSince(ctx, oldest)
	if err != nil {
		return nil, err
	}

	reports := make([]WeekReport, 0, weekCount)
	for offset := weekCount - 1; offset >= 0; offset-- {
		weekEnd := today.AddDate(0, 0, -7*offset)
		weekStart := weekEnd.AddDate(0, 0, -6)
		reports = append(reports, buildWeekReport(weekStart, weekEnd, users, transactions))
	}
	return reports, nil
}

// buildWeekReport aggregates one window over preloaded rows
func buildWeekReport(weekStart, weekEnd time.Time, users []repository.RegisteredUser, transactions []*domain.Transaction) WeekReport {
	inWindow := func(t time.Time) bool {
		d := dateOnly(t.UTC())
		return !d.Before(weekStart) && !d.After(weekEnd)
	}

	newUserIDs := make(map[int64]struct{})
	for _, u := range users {
		if inWindow(u.CreatedAt) {
			newUserIDs[u.ID] = struct{}{}
		}
	}

	var (
		depositUserIDs = make(map[int64]struct{})
		depositUSD     decimal.Decimal
		withdrawUSD    decimal.Decimal
		total          int
		nonRollbacked  int
	)

	for _, t := range transactions {
		if !inWindow(t.CreatedAt) {
			continue
		}
		total++

		if t.Amount.IsPositive() {
			depositUserIDs[t.UserID] = struct{}{}
		}

		if t.Status == domain.TransactionRollbacked {
			continue
		}
		nonRollbacked++

		rate := decimal.NewFromFloat(t.Currency.USDRate())
		if t.Amount.IsPositive() {
			depositUSD = depositUSD.Add(t.Amount.Mul(rate))
		} else {
			withdrawUSD = withdrawUSD.Add(t.Amount.Abs().Mul(rate))
		}
	}

	usersWithDeposit := 0
	for id := range newUserIDs {
		if _, ok := depositUserIDs[id]; ok {
			usersWithDeposit++
		}
	}

	return WeekReport{
		WeekStart:                    weekStart.Format(time.DateOnly),
		WeekEnd:                      weekEnd.Format(time.DateOnly),
		NewUsersCount:                len(newUserIDs),
		UsersWithDepositCount:        usersWithDeposit,
		DepositAmountUSD:             depositUSD.Round(2).InexactFloat64(),
		WithdrawAmountUSD:            withdrawUSD.Round(2).InexactFloat64(),
		TotalTransactionsCount:       total,
		NonRollbackedTransactionsCnt: nonRollbacked,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
