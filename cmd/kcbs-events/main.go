package main

import (
	"github.com/joho/godotenv"

	"github.com/pitwatch/kcbs-events/internal/cli"
)

func main() {
	// Optional .env for local runs; deployments set ZIPCODE etc. directly.
	_ = godotenv.Load()

	cli.Execute()
}
