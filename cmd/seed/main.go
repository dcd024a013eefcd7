package main

import (
	"context"
	"log"
	"os"

	"ledger_service/internal/domain"
	"ledger_service/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Seeds a couple of demo users with some ledger activity for local dev.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	users := service.NewUsersService(db)
	ledger := service.NewLedgerService(db)

	emails := []string{"alice@example.com", "bob@example.com"}
	for _, email := range emails {
		u, err := users.Create(ctx, email)
		if err != nil {
			log.Printf("skip %s: %v", email, err)
			continue
		}
		log.Printf("created user %d (%s)", u.ID, u.Email)

		deposits := []struct {
			currency domain.Currency
			amount   string
		}{
			{domain.CurrencyUSD, "1000"},
			{domain.CurrencyEUR, "250.50"},
			{domain.CurrencyBTC, "0.01"},
		}
		for _, d := range deposits {
			amount := decimal.RequireFromString(d.amount)
			tx, err := ledger.Apply(ctx, u.ID, d.currency, amount)
			if err != nil {
				log.Fatalf("seed deposit: %v", err)
			}
			log.Printf("applied transaction %d: %s %s", tx.ID, d.amount, d.currency)
		}

		withdraw := decimal.RequireFromString("-100")
		if _, err := ledger.Apply(ctx, u.ID, domain.CurrencyUSD, withdraw); err != nil {
			log.Fatalf("seed withdrawal: %v", err)
		}
	}

	log.Println("seed complete")
}
