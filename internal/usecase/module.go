package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/routemanager/internal/config"
	"github.com/polkiloo/routemanager/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewOrderUseCase,
	NewInvoiceUseCase,
	newWizardUseCase,
)

type wizardParams struct {
	fx.In

	Clients  repository.ClientRepository
	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Config   *config.Config
	Logger   *slog.Logger
}

func newWizardUseCase(p wizardParams) *WizardUseCase {
	return NewWizardUseCase(p.Clients, p.Products, p.Orders, p.Logger, WizardOptions{TTL: p.Config.WizardSessionTTL})
}
