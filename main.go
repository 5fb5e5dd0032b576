package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quackey/internal/commands"
	"quackey/internal/config"
	"quackey/internal/logger"
	"quackey/internal/session"
	"quackey/internal/ui"
)

// options carries the parsed command line.
type options struct {
	addName   string
	issuer    string
	secret    string
	digits    int
	period    int
	algorithm string
}

func run(ctx context.Context, opts options) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	if opts.addName != "" {
		return commands.AddAccount(env, opts.addName, opts.issuer, opts.secret, opts.digits, opts.period, opts.algorithm)
	}

	cfg, configured, err := config.Load(env.ConfigPath)
	if err != nil {
		return err
	}
	if !configured {
		cfg = config.Default(".")
	}

	log, closeLog, err := logger.New(cfg.LogPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog.Close()
	}()

	log.Info().Msg("application started")
	defer log.Info().Msg("application exiting")

	ctl := session.New(session.Options{
		Env:        env,
		Config:     cfg,
		Configured: configured,
		UI:         ui.New(env.NoColor),
		Log:        log,
		Now:        time.Now,
		Tick:       time.Second,
	})
	return ctl.Run(ctx)
}

func main() {
	var opts options
	flag.StringVar(&opts.addName, "add", "", "Account name to add non-interactively (requires -secret)")
	flag.StringVar(&opts.secret, "secret", "", "Base32 secret for -add")
	flag.StringVar(&opts.issuer, "issuer", "", "Issuer for -add (optional)")
	flag.IntVar(&opts.digits, "digits", 6, "Code length for -add (6, 7 or 8)")
	flag.IntVar(&opts.period, "period", 30, "Refresh period in seconds for -add (30, 60 or 90)")
	flag.StringVar(&opts.algorithm, "algorithm", "SHA1", "Digest for -add (SHA1, SHA256 or SHA512)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		stdlog.Fatalf("Application error: %v", err)
	}
}
