package main

import (
	"github.com/joho/godotenv"

	"gitamind/internal/cli"
)

func main() {
	// Credentials may live in a local .env; a missing file is fine.
	_ = godotenv.Load()

	cli.Execute()
}
