package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ledger_service/internal/service"
)

// Mints a service token for callers of the API when AUTH_JWT_SECRET is set.
func main() {
	subject := flag.String("subject", "", "caller name to embed in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-subject is required")
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET not set")
	}
	service.InitJWT(secret)

	token, err := service.GenerateServiceToken(*subject, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
