package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/routemanager/internal/config"
	"github.com/polkiloo/routemanager/internal/domain/repository"
	"github.com/polkiloo/routemanager/internal/storage/memory"
)

func TestNewFactoryOfflineUsesFixtures(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	factory, err := newFactory(factoryParams{
		Ctx:    context.Background(),
		Config: &config.Config{OfflineMode: true},
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := factory.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", factory)
	}
	if _, err := factory.Clients().Get(context.Background(), 1); err != nil {
		t.Fatalf("expected fixture client: %v", err)
	}
}

func TestNewFactoryOnlineDoesNotFallBack(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	factory, err := newFactory(factoryParams{
		Ctx:    context.Background(),
		Config: &config.Config{DatabaseURI: ":://bad"},
		Logger: logger,
	})
	if err == nil {
		t.Fatalf("expected error, got factory %T", factory)
	}
	if factory != nil {
		t.Fatalf("failed connection must not yield a factory, got %T", factory)
	}
}

func TestModuleProvidesRepositories(t *testing.T) {
	var (
		orders   repository.OrderRepository
		invoices repository.InvoiceRepository
		clients  repository.ClientRepository
	)
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(&config.Config{OfflineMode: true}),
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Provide(func() *slog.Logger { return slog.New(slog.NewJSONHandler(io.Discard, nil)) }),
		Module,
		fx.Populate(&orders, &invoices, &clients),
	)
	app.RequireStart()
	defer app.RequireStop()

	if orders == nil || invoices == nil || clients == nil {
		t.Fatal("expected repositories to be populated")
	}
}

type closeRecorder struct {
	repository.Factory
	closed bool
}

func (c *closeRecorder) Close() { c.closed = true }

func TestRegisterLifecycleClosesFactory(t *testing.T) {
	rec := &closeRecorder{Factory: memory.New(memory.Fixtures{})}
	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, rec)

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if !rec.closed {
		t.Fatal("expected factory to be closed on stop")
	}
}
