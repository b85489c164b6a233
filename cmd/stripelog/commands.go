package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"stripelog/internal/eventlog"
	pgstore "stripelog/internal/eventlog/store/postgres"
	"stripelog/internal/eventlog/store/rediscache"
	"stripelog/internal/platform/config"
	"stripelog/internal/platform/logger"
	platformpg "stripelog/internal/platform/postgres"
	platformredis "stripelog/internal/platform/redis"
	pkgerrors "stripelog/pkg/errors"
)

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	return platformpg.Open(ctx, cfg.PostgresDSN)
}

// newService wires the postgres store, the optional redis lookup cache, and
// the service on top. The returned closer releases both connections.
func newService(ctx context.Context, cfg config.Config) (*eventlog.Service, func(), error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store := pgstore.New(db)
	var lookups eventlog.Store = store

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	log := logger.New()
	if redisClient != nil {
		lookups = rediscache.New(store, redisClient.Client, cfg.CacheTTL, log)
	}

	service, err := eventlog.NewService(lookups,
		eventlog.WithLogger(log),
		eventlog.WithRawStore(store),
	)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	closer := func() {
		if redisClient != nil {
			redisClient.Close()
		}
		db.Close()
	}
	return service, closer, nil
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Drop and recreate the event log schema (destroys all data)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to reset the event log without --force; every recorded event will be lost")
			}

			ctx := cmd.Context()
			cfg := config.FromEnv()
			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pgstore.New(db).Initialize(ctx); err != nil {
				return pkgerrors.Wrap(err, pkgerrors.CodeSchemaInit, "event log reset failed")
			}

			logger.New().Info("event log schema reset complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the destructive reset")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and the time span of the log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			service, closer, err := newService(ctx, config.FromEnv())
			if err != nil {
				return err
			}
			defer closer()

			summary, err := service.Summarize(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("records: %d\n", summary.Bounds.Total)
			if summary.Bounds.Total > 0 {
				fmt.Printf("oldest:  %s\n", summary.Bounds.Oldest.Format(time.RFC3339))
				fmt.Printf("newest:  %s\n", summary.Bounds.Newest.Format(time.RFC3339))
			}

			types := make([]string, 0, len(summary.CountsByType))
			for eventType := range summary.CountsByType {
				types = append(types, eventType)
			}
			sort.Strings(types)
			for _, eventType := range types {
				fmt.Printf("%-40s %d\n", eventType, summary.CountsByType[eventType])
			}
			return nil
		},
	}
}

func newLookupCmd() *cobra.Command {
	var (
		email     string
		eventType string
		from      string
		to        string
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Query the log by email, event type, or time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			service, closer, err := newService(ctx, config.FromEnv())
			if err != nil {
				return err
			}
			defer closer()

			var records []eventlog.Record
			switch {
			case email != "":
				records, err = service.LookupByEmail(ctx, email)
			case eventType != "":
				records, err = service.LookupByType(ctx, eventType)
			case from != "" && to != "":
				var start, end time.Time
				if start, err = time.Parse(time.RFC3339, from); err != nil {
					return fmt.Errorf("parse --from: %w", err)
				}
				if end, err = time.Parse(time.RFC3339, to); err != nil {
					return fmt.Errorf("parse --to: %w", err)
				}
				records, err = service.LookupByTimeRange(ctx, start, end)
			default:
				return fmt.Errorf("one of --email, --type, or --from/--to is required")
			}
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			for _, record := range records {
				if err := encoder.Encode(record); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "customer email to look up")
	cmd.Flags().StringVar(&eventType, "type", "", "event type to look up")
	cmd.Flags().StringVar(&from, "from", "", "range start, RFC 3339 (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "range end, RFC 3339 (exclusive)")
	return cmd
}
