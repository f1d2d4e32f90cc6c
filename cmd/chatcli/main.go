package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"agency-chatbot/internal/cli"
)

func main() {
	// CHATCLI_* settings may come from a local .env file.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
