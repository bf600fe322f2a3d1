package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/md-rashed-zaman/mentorconnect/libs/config"
	"github.com/md-rashed-zaman/mentorconnect/libs/db"
	"github.com/md-rashed-zaman/mentorconnect/libs/runtime"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/events"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/rules"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/scheduling"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage/postgres"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage/sqlite"
)

// app holds what every subcommand needs once the store is open.
type app struct {
	driver   string
	dsn      string
	timezone string
	step     int
	logLevel string

	logger   *slog.Logger
	store    storage.RuleStore
	rules    *rules.Service
	resolver *scheduling.Resolver
	close    func() error
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "mentorctl",
		Short:         "Manage mentorship schedule rules",
		Long:          "Create, list and delete weekly schedule rules and preview the start times they produce.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context(), cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.driver, "driver", config.String("MENTORCTL_DRIVER", "sqlite"), "rule store driver (sqlite or postgres)")
	flags.StringVar(&a.dsn, "dsn", config.String("MENTORCTL_DSN", "mentorship.db"), "sqlite file or postgres url")
	flags.StringVar(&a.timezone, "timezone", config.String("APP_TIMEZONE", "UTC"), "IANA zone calendar dates are read in")
	flags.IntVar(&a.step, "step", 30, "slot step in minutes")
	flags.StringVar(&a.logLevel, "log-level", config.String("LOG_LEVEL", "warn"), "log level written to stderr")

	root.AddCommand(newRulesCmd(a), newSlotsCmd(a), newMentorSlotsCmd(a))
	return root
}

// execute runs args and closes the store even when the command fails.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if a.close != nil {
		err = errors.Join(err, a.close())
	}
	return err
}

func (a *app) open(ctx context.Context, cmd *cobra.Command) error {
	a.logger = runtime.NewTextLogger(cmd.ErrOrStderr(), "mentorctl", runtime.ParseLevel(a.logLevel))

	loc, err := time.LoadLocation(a.timezone)
	if err != nil {
		return fmt.Errorf("invalid --timezone: %w", err)
	}
	if a.step <= 0 || a.step > 24*60 {
		return fmt.Errorf("--step must be between 1 and 1440 (got %d)", a.step)
	}

	switch strings.ToLower(a.driver) {
	case "sqlite":
		s, err := sqlite.Open(ctx, a.dsn)
		if err != nil {
			return err
		}
		a.store, a.close = s, s.Close
	case "postgres":
		pool, err := db.Open(ctx, a.dsn, db.PoolOptions{MaxConns: 2})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		s := postgres.New(pool)
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return err
		}
		a.store, a.close = s, func() error { s.Close(); return nil }
	default:
		return fmt.Errorf("--driver must be sqlite or postgres (got %q)", a.driver)
	}

	a.rules = rules.NewService(a.store, events.LogPublisher{Logger: a.logger}, a.logger)
	a.resolver = scheduling.NewResolver(scheduling.NewStoreSource(a.store), a.logger,
		scheduling.WithLocation(loc),
		scheduling.WithStep(time.Duration(a.step)*time.Minute),
	)
	return nil
}

func (a *app) parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().In(a.resolver.Location()), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, raw, a.resolver.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date, use YYYY-MM-DD: %w", err)
	}
	return d, nil
}
