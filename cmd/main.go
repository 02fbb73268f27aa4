package main

import (
	"context"
	"os"

	"github.com/quireapp/quire/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("ignoring unreadable config.toml", "err", err)
		}
	}
	logger.SetLevel(shared.ParseLogLevel(config.Log.Level))

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "quire",
		Usage:    "Store, browse and organize sheet music",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
