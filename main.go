package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spurge/netica/cmd"
)

func main() {
	// Optional; keys can also come from the config file or real env vars.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
