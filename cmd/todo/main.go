package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/cli"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logger"
	"github.com/idilsaglam/tada/internal/todolist"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	// Root flags (apply to every subcommand)
	group := flag.Bool("group", false, "group output by status")
	theme := flag.String("theme", cfg.Theme, "color theme: classic, neon or mono")
	apiURL := flag.String("api-url", cfg.APIURL, "todo API base URL")
	forceColor := flag.Bool("color", false, "force colored output")
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	cfg.Theme = strings.ToLower(*theme)
	cfg.APIURL = strings.TrimRight(*apiURL, "/")
	if err := cfg.Validate(); err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		return 2
	}
	ui.SetTheme(cfg.Theme)
	_, noColor := os.LookupEnv("NO_COLOR")
	ui.SetColorForcing(*forceColor, noColor || cfg.Theme == "mono")

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		return 2
	}

	// The interactive UI owns the terminal; it only logs to a file.
	newLogger := logger.New
	if args[0] == "ui" {
		newLogger = logger.ForTUI
	}
	log, closeLog, err := newLogger(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		File:     cfg.Logger.File,
		Fallback: os.Stderr,
	})
	if err != nil {
		ui.Fail(os.Stderr, "logger: "+err.Error())
		return 1
	}
	defer func() {
		_ = log.Sync()
		_ = closeLog()
	}()

	client, err := api.New(cfg.APIURL, api.WithLogger(log))
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 2
	}
	log.Debug("client ready", zap.String("api_url", client.BaseURL()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code := cli.Run(ctx, client, args, cli.Options{
		Group:  *group,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Logger: log,
		Interactive: func() error {
			return tui.Run(todolist.NewController(client, log))
		},
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
