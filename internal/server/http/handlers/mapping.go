package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/server/http/dto"
	"github.com/polkiloo/routemanager/internal/usecase"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toRouteResponse(r model.Route) dto.RouteResponse {
	return dto.RouteResponse{ID: r.ID, Name: r.Name, Salesperson: r.Salesperson}
}

func toClientResponse(c model.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		RouteID:   c.RouteID,
		RouteName: c.RouteName,
		CreatedAt: c.CreatedAt,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Category:  p.Category,
		Price:     money(p.Price),
		Stock:     p.Stock,
		Active:    p.Active,
		UpdatedAt: p.UpdatedAt,
	}
}

func toWizardResponse(s usecase.WizardSession) dto.WizardResponse {
	resp := dto.WizardResponse{
		ID:        s.ID,
		Step:      string(s.Step),
		Lines:     make([]dto.CartLineResponse, 0, len(s.Lines)),
		Total:     money(s.Total),
		UpdatedAt: s.UpdatedAt,
		ExpiresAt: s.ExpiresAt,
	}
	if s.Client != nil {
		client := toClientResponse(*s.Client)
		resp.Client = &client
	}
	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			SKU:         l.SKU,
			Quantity:    l.Quantity,
			UnitPrice:   money(l.UnitPrice),
			Subtotal:    money(l.Subtotal()),
		})
	}
	if s.Amounts != nil {
		resp.Amounts = &dto.AmountsResponse{
			Subtotal: money(s.Amounts.Subtotal),
			Tax:      money(s.Amounts.Tax),
			Total:    money(s.Amounts.Total),
		}
	}
	return resp
}

func toCartChangeResponse(s usecase.WizardSession, change model.CartChange) dto.CartChangeResponse {
	return dto.CartChangeResponse{
		Session:  toWizardResponse(s),
		Quantity: change.Line.Quantity,
		Removed:  change.Removed,
		Clamped:  change.Clamped,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:         o.ID,
		ClientID:   o.ClientID,
		ClientName: o.ClientName,
		OperatorID: o.OperatorID,
		Lines:      make([]dto.OrderLineResponse, 0, len(o.Lines)),
		Total:      money(o.Total),
		Status:     string(o.Status),
		Allowed:    []string{},
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			SKU:         l.SKU,
			Quantity:    l.Quantity,
			UnitPrice:   money(l.UnitPrice),
			Subtotal:    money(l.Subtotal),
		})
	}
	for _, d := range o.Status.AllowedDirections() {
		resp.Allowed = append(resp.Allowed, string(d))
	}
	return resp
}

func toStatusChangeResponse(ch model.StatusChange) dto.StatusChangeResponse {
	return dto.StatusChangeResponse{
		From:       string(ch.From),
		To:         string(ch.To),
		OperatorID: ch.OperatorID,
		ChangedAt:  ch.ChangedAt,
	}
}

func toInvoiceResponse(i model.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:            i.ID,
		Folio:         i.Folio,
		Series:        i.Series,
		OrderID:       i.OrderID,
		ClientID:      i.ClientID,
		IssuedAt:      i.IssuedAt,
		Subtotal:      money(i.Subtotal),
		Tax:           money(i.Tax),
		Total:         money(i.Total),
		PaymentMethod: i.PaymentMethod,
		Status:        string(i.Status),
		UUIDSAT:       i.UUIDSAT,
		CancelledAt:   i.CancelledAt,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
