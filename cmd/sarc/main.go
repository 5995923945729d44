// Command sarc lists, prints and extracts the files of sarc archives.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// env carries state shared by all commands.
type env struct {
	logger *slog.Logger
}

func newApp() *cli.App {
	e := &env{logger: slog.New(slog.DiscardHandler)}
	return &cli.App{
		Name:                 "sarc",
		Usage:                "Inspect and extract sarc archives",
		HideVersion:          true,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "Set log level (debug, info, warn, error)", EnvVars: []string{"SARC_LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(strings.ToUpper(c.String("log-level")))); err != nil {
				return fmt.Errorf("invalid --log-level %q", c.String("log-level"))
			}
			e.logger = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
			return nil
		},
		Commands: []*cli.Command{
			e.listCommand(),
			e.catCommand(),
			e.extractCommand(),
		},
	}
}
