package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"wordstat-go/internal/cli"
)

func main() {
	// Load .env file if present; real environment variables win
	godotenv.Load()

	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
