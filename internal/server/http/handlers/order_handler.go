package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/server/http/dto"
)

// OrderHandler manages order queries and status transitions.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders?status=&client_id=.
func (h *OrderHandler) List(c *gin.Context) {
	filter := model.OrderFilter{Status: model.OrderStatus(c.Query("status"))}
	if raw := c.Query("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "bad_request",
				Message: "client_id must be an integer",
				Details: map[string]any{"field": "client_id"},
			})
			return
		}
		filter.ClientID = id
	}

	orders, err := h.facade.Orders(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(orders, toOrderResponse))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// History handles GET /api/orders/:id/history, oldest entry first.
func (h *OrderHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	history, err := h.facade.OrderHistory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(history, toStatusChangeResponse))
}

// Transition returns the handler for POST /api/orders/:id/<dir>.
func (h *OrderHandler) Transition(dir model.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var (
			order *model.Order
			err   error
		)
		if dir == model.DirectionCancel {
			order, err = h.facade.CancelOrder(c.Request.Context(), id, CurrentOperatorID(c))
		} else {
			order, err = h.facade.TransitionOrder(c.Request.Context(), id, CurrentOperatorID(c), dir)
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(*order))
	}
}
