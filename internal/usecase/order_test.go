package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/storage/memory"
	testhelpers "github.com/polkiloo/routemanager/internal/test"
)

// moveTo drives a fresh order to status along legal transitions.
func moveTo(t *testing.T, uc *OrderUseCase, store *memory.Store, status model.OrderStatus) *model.Order {
	t.Helper()
	order := seedOrder(t, store, "100.00")
	var path []model.Direction
	switch status {
	case model.OrderStatusEnRoute:
		path = []model.Direction{model.DirectionAdvance}
	case model.OrderStatusDelivered:
		path = []model.Direction{model.DirectionAdvance, model.DirectionAdvance}
	case model.OrderStatusCancelled:
		path = []model.Direction{model.DirectionCancel}
	}
	for _, dir := range path {
		var err error
		if order, err = uc.Transition(context.Background(), order.ID, 1, dir); err != nil {
			t.Fatalf("move to %s: %v", status, err)
		}
	}
	return order
}

func TestTransitionTable(t *testing.T) {
	for _, from := range model.OrderStatuses {
		for _, dir := range model.Directions {
			t.Run(string(from)+"/"+string(dir), func(t *testing.T) {
				store := newStore()
				uc := NewOrderUseCase(store.Orders(), discardLogger())
				order := moveTo(t, uc, store, from)

				want, legal := from.Target(dir)
				got, err := uc.Transition(context.Background(), order.ID, 2, dir)
				if legal {
					if err != nil {
						t.Fatalf("expected success, got %v", err)
					}
					if got.Status != want {
						t.Fatalf("expected %s, got %s", want, got.Status)
					}
					return
				}

				var tErr *domainErrors.InvalidTransitionError
				if !errors.As(err, &tErr) {
					t.Fatalf("expected InvalidTransitionError, got %v", err)
				}
				if tErr.Current != string(from) || tErr.Stale {
					t.Fatalf("unexpected error %+v", tErr)
				}
				stored, _ := uc.Get(context.Background(), order.ID)
				if stored.Status != from {
					t.Fatalf("rejected transition changed status to %s", stored.Status)
				}
			})
		}
	}
}

func TestTransitionScenarioAdvanceToDelivered(t *testing.T) {
	store := newStore()
	uc := NewOrderUseCase(store.Orders(), discardLogger())
	ctx := context.Background()
	order := seedOrder(t, store, "450.00")

	for _, want := range []model.OrderStatus{model.OrderStatusEnRoute, model.OrderStatusDelivered} {
		got, err := uc.Transition(ctx, order.ID, 7, model.DirectionAdvance)
		if err != nil || got.Status != want {
			t.Fatalf("expected %s, got %+v err=%v", want, got, err)
		}
	}

	_, err := uc.Transition(ctx, order.ID, 7, model.DirectionAdvance)
	var tErr *domainErrors.InvalidTransitionError
	if !errors.As(err, &tErr) || tErr.Current != "Entregado" || tErr.Requested != "advance" {
		t.Fatalf("expected invalid transition from Entregado, got %v", err)
	}

	if _, err := uc.Cancel(ctx, order.ID, 7); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("delivered orders cannot be cancelled, got %v", err)
	}

	history, err := uc.History(ctx, order.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected creation plus two transitions, got %+v", history)
	}
	if history[0].From != "" || history[0].To != model.OrderStatusPending {
		t.Fatalf("unexpected creation entry %+v", history[0])
	}
	if history[2].From != model.OrderStatusEnRoute || history[2].To != model.OrderStatusDelivered || history[2].OperatorID != 7 {
		t.Fatalf("unexpected last entry %+v", history[2])
	}
	if history[2].ChangedAt.IsZero() {
		t.Fatal("history entries carry a timestamp")
	}
}

func TestInvalidTransitionNamesRequestedStatus(t *testing.T) {
	cases := []struct {
		from model.OrderStatus
		dir  model.Direction
		want string
	}{
		{model.OrderStatusPending, model.DirectionRevert, "revert"},
		{model.OrderStatusDelivered, model.DirectionCancel, "Cancelado"},
		{model.OrderStatusCancelled, model.DirectionAdvance, "advance"},
		{model.OrderStatusPending, model.DirectionAdvance, "En Ruta"},
		{model.OrderStatusDelivered, model.DirectionRevert, "En Ruta"},
	}
	for _, tc := range cases {
		if got := requestedStatus(tc.from, tc.dir); got != tc.want {
			t.Errorf("%s/%s: expected %q, got %q", tc.from, tc.dir, tc.want, got)
		}
	}
}

func TestTransitionLostRaceIsStale(t *testing.T) {
	store := newStore()
	order := seedOrder(t, store, "10.00")
	repo := &testhelpers.OrderRepositoryStub{
		Next: store.Orders(),
		UpdateStatusFn: func(context.Context, model.StatusChange) (*model.Order, error) {
			return nil, domainErrors.ErrConflict
		},
	}
	uc := NewOrderUseCase(repo, discardLogger())

	_, err := uc.Transition(context.Background(), order.ID, 1, model.DirectionAdvance)
	var tErr *domainErrors.InvalidTransitionError
	if !errors.As(err, &tErr) || !tErr.Stale {
		t.Fatalf("expected stale invalid transition, got %v", err)
	}
	if tErr.Current != "Pendiente" || tErr.Requested != "En Ruta" {
		t.Fatalf("unexpected error fields %+v", tErr)
	}
	if len(repo.Changes) != 1 || repo.Changes[0].From != model.OrderStatusPending {
		t.Fatalf("expected conditional update on Pendiente, got %+v", repo.Changes)
	}
}

func TestTransitionPropagatesStoreErrors(t *testing.T) {
	failure := domainErrors.Persistence("orders.update_status", errors.New("connection reset"))
	store := newStore()
	order := seedOrder(t, store, "10.00")
	uc := NewOrderUseCase(&testhelpers.OrderRepositoryStub{
		Next: store.Orders(),
		UpdateStatusFn: func(context.Context, model.StatusChange) (*model.Order, error) {
			return nil, failure
		},
	}, discardLogger())

	if _, err := uc.Transition(context.Background(), order.ID, 1, model.DirectionAdvance); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if _, err := uc.Transition(context.Background(), 999, 1, model.DirectionAdvance); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConcurrentTransitionsHaveOneWinner(t *testing.T) {
	store := newStore()
	uc := NewOrderUseCase(store.Orders(), discardLogger())
	order := moveTo(t, uc, store, model.OrderStatusEnRoute)

	dirs := []model.Direction{model.DirectionAdvance, model.DirectionCancel, model.DirectionRevert}
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  int
		rejected int
	)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(dir model.Direction) {
			defer wg.Done()
			_, err := uc.Transition(context.Background(), order.ID, 1, dir)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case errors.Is(err, domainErrors.ErrInvalidTransition):
				rejected++
			default:
				t.Errorf("unexpected error %v", err)
			}
		}(dirs[i%len(dirs)])
	}
	wg.Wait()

	history, err := uc.History(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	// every successful transition is recorded once, and each starts where the previous ended
	if len(history)-2 != winners {
		t.Fatalf("expected %d recorded transitions, history has %d entries", winners, len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].From != history[i-1].To {
			t.Fatalf("history is not a chain at %d: %+v", i, history)
		}
	}
	if winners+rejected != 30 {
		t.Fatalf("expected 30 outcomes, got %d", winners+rejected)
	}
}

func TestListOrdersFilters(t *testing.T) {
	store := newStore()
	uc := NewOrderUseCase(store.Orders(), discardLogger())
	ctx := context.Background()

	first := seedOrder(t, store, "10.00")
	second := moveTo(t, uc, store, model.OrderStatusEnRoute)

	all, err := uc.List(ctx, model.OrderFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 orders, got %v err=%v", all, err)
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected newest first, got %d then %d", all[0].ID, all[1].ID)
	}

	enRoute, err := uc.List(ctx, model.OrderFilter{Status: model.OrderStatusEnRoute})
	if err != nil || len(enRoute) != 1 || enRoute[0].ID != second.ID {
		t.Fatalf("unexpected filtered list %v err=%v", enRoute, err)
	}

	if _, err := uc.List(ctx, model.OrderFilter{Status: "Perdido"}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if _, err := uc.List(ctx, model.OrderFilter{ClientID: -3}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for negative client, got %v", err)
	}
}
