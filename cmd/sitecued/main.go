package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/sitecue/sitecue/internal/app"
)

func main() {
	// Local development convenience; absent .env is fine
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ sitecued failed to start: %v", err)
	}
}
