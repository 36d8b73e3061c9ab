package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"sdd/internal/di"
	"sdd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "c", "config.yaml", "path to the yaml config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug mode")
	flag.Parse()

	// Optional .env next to the binary; real env vars win.
	_ = godotenv.Load()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "sdd: %s\n", err)
		os.Exit(1)
	}
}
