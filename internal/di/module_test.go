package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/routemanager/internal/app"
	"github.com/polkiloo/routemanager/internal/config"
	"github.com/polkiloo/routemanager/internal/domain/repository"
	"github.com/polkiloo/routemanager/internal/storage/memory"
	"github.com/polkiloo/routemanager/internal/worker"
)

func offlineConfig() *config.Config {
	return &config.Config{
		RunAddress:       ":0",
		OfflineMode:      true,
		JWTSecret:        "secret",
		CatalogCacheTTL:  time.Minute,
		WizardSessionTTL: time.Minute,
		SweepInterval:    time.Minute,
		ShutdownTimeout:  time.Second,
	}
}

func TestModuleComposesOfflineGraph(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var (
		facade  *app.RouteManagerFacade
		engine  *gin.Engine
		sweeper *worker.SessionSweeper
		factory repository.Factory
		clients repository.ClientRepository
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(offlineConfig()),
			fx.Replace(logger),
		),
		fx.Populate(&facade, &engine, &sweeper, &factory, &clients),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || engine == nil || sweeper == nil {
		t.Fatal("expected facade, router and sweeper instances")
	}
	if _, ok := factory.(*memory.Store); !ok {
		t.Fatalf("offline mode must select the memory store, got %T", factory)
	}
	if clients == nil {
		t.Fatal("expected client repository")
	}

	if err := facade.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy offline store, got %v", err)
	}
	routes, err := facade.Routes(context.Background())
	if err != nil || len(routes) != 3 {
		t.Fatalf("expected demo routes through the graph, got %v err=%v", routes, err)
	}
}

func TestModuleStartsAndStopsOffline(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(offlineConfig()),
			fx.Replace(logger),
		),
	)
	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fxApp.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := fxApp.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
