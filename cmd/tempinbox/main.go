// Command tempinbox is a terminal client for a disposable mail.tm inbox.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nhle/tempinbox/internal/app"
	"github.com/nhle/tempinbox/internal/config"
	"github.com/nhle/tempinbox/internal/credential"
	"github.com/nhle/tempinbox/internal/event"
	"github.com/nhle/tempinbox/internal/inbox"
	"github.com/nhle/tempinbox/internal/logging"
	"github.com/nhle/tempinbox/internal/mailtm"
	"github.com/nhle/tempinbox/internal/session"
	"github.com/nhle/tempinbox/internal/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tempinbox:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("tempinbox", flag.ContinueOnError)
	cfgPath := fs.String("config", config.DefaultConfigPath(), "path to config.yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}

	if fs.Arg(0) == "init" {
		if err := config.SaveConfig(*cfgPath, cfg); err != nil {
			return err
		}
		fmt.Println("wrote", *cfgPath)
		return nil
	}

	logger, logCloser, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	persister, closer, err := openPersister(cfg, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	client := mailtm.NewClient(cfg.API.BaseURL, mailtm.WithTimeout(cfg.APITimeout()))
	relay := event.NewRelay(0)
	sessions := session.NewStore(persister)

	poller := inbox.New(client, sessions, relay, logging.Component(logger, "inbox"))
	manager := session.NewManager(client, sessions, poller, relay, logging.Component(logger, "session"))

	model := app.New(app.Options{
		Sessions:     manager,
		Current:      sessions,
		Inbox:        poller,
		Accounts:     client,
		Relay:        relay,
		PollInterval: cfg.PollInterval(),
		Log:          logging.Component(logger, "app"),
	})

	logger.Info().
		Str("base_url", cfg.API.BaseURL).
		Str("backend", cfg.Storage.Backend).
		Dur("interval", cfg.PollInterval()).
		Msg("starting")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	poller.Stop()
	relay.Close()
	return err
}

// openPersister opens the configured session backend.
func openPersister(cfg *config.AppConfig, logger zerolog.Logger) (session.Persister, io.Closer, error) {
	switch cfg.Storage.Backend {
	case config.BackendKeyring:
		ring, err := credential.Open(config.Dir())
		if err != nil {
			return nil, nil, err
		}
		ks := credential.NewKeyringStore(ring)
		return ks, ks, nil

	default:
		db, err := store.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening session store: %w", err)
		}
		logger.Debug().Str("path", cfg.Storage.Path).Msg("sqlite session store open")
		return db, db, nil
	}
}
