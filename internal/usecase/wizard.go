package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/domain/repository"
)

// WizardStep is the stage an order wizard session is in.
type WizardStep string

const (
	StepClient  WizardStep = "client"
	StepCart    WizardStep = "cart"
	StepConfirm WizardStep = "confirm"
)

const defaultWizardTTL = 30 * time.Minute

// WizardSession is a point-in-time view of an order being composed.
// Amounts is only populated on the confirmation step.
type WizardSession struct {
	ID         string
	OperatorID int64
	Step       WizardStep
	Client     *model.Client
	Lines      []model.CartLine
	Total      decimal.Decimal
	Amounts    *model.TaxBreakdown
	UpdatedAt  time.Time
	ExpiresAt  time.Time
}

// WizardOptions tune session handling. Zero values pick defaults.
type WizardOptions struct {
	TTL   time.Duration
	Now   func() time.Time
	NewID func() string
}

type wizardSession struct {
	mu         sync.Mutex
	id         string
	operatorID int64
	step       WizardStep
	client     *model.Client
	cart       model.Cart
	touched    time.Time
	closed     bool
}

// WizardUseCase keeps in-progress orders in memory until they are committed.
// Sessions belong to the operator that started them and expire after TTL of
// inactivity.
type WizardUseCase struct {
	clients  repository.ClientRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	policy   *bluemonday.Policy
	logger   *slog.Logger

	ttl   time.Duration
	now   func() time.Time
	newID func() string

	mu       sync.Mutex
	sessions map[string]*wizardSession
}

// NewWizardUseCase constructs WizardUseCase.
func NewWizardUseCase(clients repository.ClientRepository, products repository.ProductRepository, orders repository.OrderRepository, logger *slog.Logger, opts WizardOptions) *WizardUseCase {
	u := &WizardUseCase{
		clients:  clients,
		products: products,
		orders:   orders,
		policy:   bluemonday.StrictPolicy(),
		logger:   logger,
		ttl:      opts.TTL,
		now:      opts.Now,
		newID:    opts.NewID,
		sessions: make(map[string]*wizardSession),
	}
	if u.ttl <= 0 {
		u.ttl = defaultWizardTTL
	}
	if u.now == nil {
		u.now = time.Now
	}
	if u.newID == nil {
		u.newID = func() string { return ulid.Make().String() }
	}
	return u
}

// Start opens a session on the client selection step.
func (u *WizardUseCase) Start(_ context.Context, operatorID int64) (WizardSession, error) {
	if operatorID <= 0 {
		return WizardSession{}, domainErrors.Validation("operator_id", "must be positive")
	}
	s := &wizardSession{
		id:         u.newID(),
		operatorID: operatorID,
		step:       StepClient,
		touched:    u.now(),
	}

	u.mu.Lock()
	u.sessions[s.id] = s
	u.mu.Unlock()

	u.logger.Debug("wizard started", slog.String("session_id", s.id), slog.Int64("operator_id", operatorID))
	return u.view(s), nil
}

func (u *WizardUseCase) Get(_ context.Context, operatorID int64, sessionID string) (WizardSession, error) {
	var out WizardSession
	err := u.with(operatorID, sessionID, func(s *wizardSession) error {
		out = u.view(s)
		return nil
	})
	return out, err
}

// SelectClient sets the order's client and moves to the cart step.
func (u *WizardUseCase) SelectClient(ctx context.Context, operatorID int64, sessionID string, clientID int64) (WizardSession, error) {
	var out WizardSession
	err := u.with(operatorID, sessionID, func(s *wizardSession) error {
		client, err := u.clients.Get(ctx, clientID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.Validation("client_id", "client does not exist")
			}
			return err
		}
		s.client = client
		s.step = StepCart
		s.touched = u.now()
		out = u.view(s)
		return nil
	})
	return out, err
}

// AddItem adds qty units of the product to the cart, clamped to its stock.
func (u *WizardUseCase) AddItem(ctx context.Context, operatorID int64, sessionID string, productID int64, qty int) (WizardSession, model.CartChange, error) {
	var (
		out    WizardSession
		change model.CartChange
	)
	err := u.with(operatorID, sessionID, func(s *wizardSession) error {
		if s.client == nil {
			return domainErrors.Validation("client_id", "select a client first")
		}
		product, err := u.lookupProduct(ctx, productID)
		if err != nil {
			return err
		}
		change, err = s.cart.AddItem(*product, qty)
		if err != nil {
			return err
		}
		s.step = StepCart
		s.touched = u.now()
		out = u.view(s)
		return nil
	})
	return out, change, err
}

// UpdateQuantity overwrites a cart line's quantity, clamped to current stock.
// A quantity of zero or less removes the line.
func (u *WizardUseCase) UpdateQuantity(ctx context.Context, operatorID int64, sessionID string, productID int64, qty int) (WizardSession, model.CartChange, error) {
	var (
		out    WizardSession
		change model.CartChange
	)
	err := u.with(operatorID, sessionID, func(s *wizardSession) error {
		if _, ok := s.cart.Line(productID); !ok {
			return fmt.Errorf("product %d is not in the cart: %w", productID, domainErrors.ErrNotFound)
		}

		stock := 0
		product, err := u.products.Get(ctx, productID)
		switch {
		case err == nil:
			if product.Active {
				stock = product.Stock
			}
		case !errors.Is(err, domainErrors.ErrNotFound):
			return err
		}

		change, _ = s.cart.UpdateQuantity(productID, qty, stock)
		s.step = StepCart
		s.touched = u.now()
		out = u.view(s)
		return nil
	})
	return out, change, err
}

// RemoveItem deletes a cart line.
func (u *WizardUseCase) RemoveItem(_ context.Context, operatorID int64, sessionID string, productID int64) (WizardSession, error) {
	var out WizardSession
	err := u.with(operatorID, sessionID, func(s *wizardSession) error {
		if !s.cart.RemoveItem(productID) {
			return fmt.Errorf("product %d is not in the cart: %w", productID, domainErrors.ErrNotFound)
		}
		s.step = StepCart
		s.touched = u.now()
		out = u.view(s)
		return nil
	})
	return out, err
}

// ClearCart empties the cart, keeping the selected client.
func (u *WizardUseCase) ClearCart(_ context.Context, operatorID int64, sessionID string) (WizardSession, error) {
	var out WizardSession
	err := u.with(operatorID, sessionID, func(s *wizardSession) error {
		s.cart.Clear()
		if s.client != nil {
			s.step = StepCart
		}
		s.touched = u.now()
		out = u.view(s)
		return nil
	})
	return out, err
}

// Review moves a session with a client and a non-empty cart to confirmation.
func (u *WizardUseCase) Review(_ context.Context, operatorID int64, sessionID string) (WizardSession, error) {
	var out WizardSession
	err := u.with(operatorID, sessionID, func(s *wizardSession) error {
		if err := checkCommittable(s); err != nil {
			return err
		}
		s.step = StepConfirm
		s.touched = u.now()
		out = u.view(s)
		return nil
	})
	return out, err
}

// Commit persists the reviewed cart as a Pendiente order and closes the
// session. On failure the session stays open so the operator can retry.
func (u *WizardUseCase) Commit(ctx context.Context, operatorID int64, sessionID, notes string) (*model.Order, error) {
	var order *model.Order
	err := u.with(operatorID, sessionID, func(s *wizardSession) error {
		if s.step != StepConfirm {
			return domainErrors.Validation("step", "review the order before committing")
		}
		if err := checkCommittable(s); err != nil {
			return err
		}
		cleanNotes, err := u.sanitizeNotes(notes)
		if err != nil {
			return err
		}

		created, err := u.orders.Create(ctx, model.Order{
			ClientID:   s.client.ID,
			ClientName: s.client.Name,
			OperatorID: s.operatorID,
			Lines:      s.cart.OrderLines(),
			Total:      s.cart.Total(),
			Status:     model.OrderStatusPending,
			Notes:      cleanNotes,
		})
		if err != nil {
			s.touched = u.now()
			return err
		}

		s.cart.Clear()
		u.close(s)
		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("order committed",
		slog.Int64("order_id", order.ID),
		slog.Int64("client_id", order.ClientID),
		slog.String("total", order.Total.StringFixed(2)),
		slog.String("session_id", sessionID),
	)
	return order, nil
}

// Cancel discards the session and its cart.
func (u *WizardUseCase) Cancel(_ context.Context, operatorID int64, sessionID string) error {
	return u.with(operatorID, sessionID, func(s *wizardSession) error {
		s.cart.Clear()
		u.close(s)
		return nil
	})
}

// ExpireSessions drops sessions idle for longer than the TTL and returns how
// many were removed.
func (u *WizardUseCase) ExpireSessions(context.Context) int {
	now := u.now()

	u.mu.Lock()
	candidates := make([]*wizardSession, 0, len(u.sessions))
	for _, s := range u.sessions {
		candidates = append(candidates, s)
	}
	u.mu.Unlock()

	expired := 0
	for _, s := range candidates {
		s.mu.Lock()
		if !s.closed && u.expired(s, now) {
			u.close(s)
			expired++
		}
		s.mu.Unlock()
	}
	return expired
}

// ActiveSessions returns the number of open sessions.
func (u *WizardUseCase) ActiveSessions() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.sessions)
}

// with runs fn with the session locked. Sessions of other operators, expired
// and closed sessions are reported as not found.
func (u *WizardUseCase) with(operatorID int64, sessionID string, fn func(*wizardSession) error) error {
	u.mu.Lock()
	s, ok := u.sessions[sessionID]
	u.mu.Unlock()
	if !ok || s.operatorID != operatorID {
		return sessionNotFound(sessionID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sessionNotFound(sessionID)
	}
	if u.expired(s, u.now()) {
		u.close(s)
		return sessionNotFound(sessionID)
	}
	return fn(s)
}

// close removes s from the registry. Caller holds s.mu.
func (u *WizardUseCase) close(s *wizardSession) {
	s.closed = true
	u.mu.Lock()
	delete(u.sessions, s.id)
	u.mu.Unlock()
}

func (u *WizardUseCase) expired(s *wizardSession, now time.Time) bool {
	return now.Sub(s.touched) > u.ttl
}

func (u *WizardUseCase) view(s *wizardSession) WizardSession {
	out := WizardSession{
		ID:         s.id,
		OperatorID: s.operatorID,
		Step:       s.step,
		Lines:      s.cart.Lines(),
		Total:      s.cart.Total(),
		UpdatedAt:  s.touched,
		ExpiresAt:  s.touched.Add(u.ttl),
	}
	if s.client != nil {
		client := *s.client
		out.Client = &client
	}
	if s.step == StepConfirm {
		amounts := model.SplitTax(out.Total)
		out.Amounts = &amounts
	}
	return out
}

func (u *WizardUseCase) lookupProduct(ctx context.Context, productID int64) (*model.Product, error) {
	product, err := u.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.Validation("product_id", "product does not exist")
		}
		return nil, err
	}
	return product, nil
}

// sanitizeNotes strips markup and stores the notes as plain text.
func (u *WizardUseCase) sanitizeNotes(notes string) (string, error) {
	clean := strings.TrimSpace(html.UnescapeString(u.policy.Sanitize(notes)))
	if utf8.RuneCountInString(clean) > maxNotesLength {
		return "", domainErrors.Validation("notes", fmt.Sprintf("must be at most %d characters", maxNotesLength))
	}
	return clean, nil
}

func checkCommittable(s *wizardSession) error {
	if s.client == nil {
		return domainErrors.Validation("client_id", "no client selected")
	}
	if s.cart.Empty() {
		return domainErrors.Validation("cart", "cart is empty")
	}
	return nil
}

func sessionNotFound(id string) error {
	return fmt.Errorf("wizard session %s: %w", id, domainErrors.ErrNotFound)
}
