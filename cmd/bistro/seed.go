package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/polkiloo/bistro/internal/config"
	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/logger"
	"github.com/polkiloo/bistro/internal/seed"
	"github.com/polkiloo/bistro/internal/storage"
	"github.com/polkiloo/bistro/internal/usecase"
)

var errResetUnsupported = errors.New("--reset is only supported by the memory backend")

type seedOptions struct {
	reset  bool
	orders int
}

func newSeedCmd() *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed [flags] [-- config flags]",
		Short: "Load the sample menu into the configured backend",
		Example: "  bistro seed -- -d mongodb://localhost:27017\n" +
			"  DATABASE_URI=postgres://localhost/bistro bistro seed --orders 10",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runSeed(ctx, config.Args(args), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "drop existing data first (memory backend only)")
	cmd.Flags().IntVar(&opts.orders, "orders", 0, "number of demo orders to place after the menu")
	return cmd
}

func runSeed(ctx context.Context, args config.Args, opts seedOptions) error {
	var (
		menu    *usecase.MenuUseCase
		orders  *usecase.OrderUseCase
		backend storage.Backend
		log     *slog.Logger
	)
	app := fx.New(
		fx.WithLogger(logger.EventLogger),
		fx.Provide(func() context.Context { return ctx }),
		fx.Supply(args),
		config.Module,
		logger.Module,
		storage.Module,
		usecase.Module,
		fx.Populate(&menu, &orders, &backend, &log),
	)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	if opts.reset {
		r, ok := backend.(storage.Resetter)
		if !ok {
			return errResetUnsupported
		}
		r.Reset()
		log.Info("storage reset")
	}

	items, err := seed.Catalog()
	if err != nil {
		return err
	}
	res, err := seed.Menu(ctx, menu, items, log)
	if err != nil {
		return err
	}
	log.Info("menu seeded", slog.Int("created", res.Created), slog.Int("skipped", res.Skipped))

	if opts.orders > 0 {
		stored, _, err := menu.List(ctx, model.MenuFilter{}, model.Page{Number: 1, Limit: len(items)})
		if err != nil {
			return err
		}
		placed, err := seed.Orders(ctx, orders, stored, opts.orders, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			return err
		}
		log.Info("demo orders placed", slog.Int("count", placed))
	}
	return nil
}
