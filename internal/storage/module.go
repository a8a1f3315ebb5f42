package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/routemanager/internal/config"
	"github.com/polkiloo/routemanager/internal/domain/repository"
	"github.com/polkiloo/routemanager/internal/storage/memory"
	"github.com/polkiloo/routemanager/internal/storage/postgres"
)

// Module selects the persistence backend and exposes its repositories.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.OperatorRepository { return f.Operators() },
		func(f repository.Factory) repository.RouteRepository { return f.Routes() },
		func(f repository.Factory) repository.ClientRepository { return f.Clients() },
		func(f repository.Factory) repository.ProductRepository { return f.Products() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.InvoiceRepository { return f.Invoices() },
	),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// newFactory never falls back to fixtures on its own: offline mode must be
// requested explicitly.
func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.OfflineMode {
		p.Logger.Warn("offline mode enabled, serving in-memory demo data")
		return memory.New(memory.DemoFixtures()), nil
	}

	storage, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	return storage, nil
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			factory.Close()
			return nil
		},
	})
}
