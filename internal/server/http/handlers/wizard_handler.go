package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/routemanager/internal/server/http/dto"
)

// WizardHandler exposes the order composition flow. Every session is scoped
// to the operator that started it.
type WizardHandler struct {
	facade WizardFacade
}

func NewWizardHandler(facade WizardFacade) *WizardHandler {
	return &WizardHandler{facade: facade}
}

// Start handles POST /api/wizard.
func (h *WizardHandler) Start(c *gin.Context) {
	session, err := h.facade.StartWizard(c.Request.Context(), CurrentOperatorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWizardResponse(session))
}

func (h *WizardHandler) Get(c *gin.Context) {
	session, err := h.facade.Wizard(c.Request.Context(), CurrentOperatorID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWizardResponse(session))
}

// SelectClient handles PUT /api/wizard/:id/client.
func (h *WizardHandler) SelectClient(c *gin.Context) {
	var req dto.SelectClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := h.facade.SelectClient(c.Request.Context(), CurrentOperatorID(c), c.Param("id"), req.ClientID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWizardResponse(session))
}

// AddItem handles POST /api/wizard/:id/items. A missing quantity adds one unit.
func (h *WizardHandler) AddItem(c *gin.Context) {
	req := dto.CartItemRequest{Quantity: 1}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, change, err := h.facade.AddCartItem(c.Request.Context(), CurrentOperatorID(c), c.Param("id"), req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartChangeResponse(session, change))
}

// UpdateItem handles PUT /api/wizard/:id/items/:productID.
func (h *WizardHandler) UpdateItem(c *gin.Context) {
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, change, err := h.facade.UpdateCartItem(c.Request.Context(), CurrentOperatorID(c), c.Param("id"), productID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartChangeResponse(session, change))
}

func (h *WizardHandler) RemoveItem(c *gin.Context) {
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}
	session, err := h.facade.RemoveCartItem(c.Request.Context(), CurrentOperatorID(c), c.Param("id"), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWizardResponse(session))
}

// ClearCart handles DELETE /api/wizard/:id/items.
func (h *WizardHandler) ClearCart(c *gin.Context) {
	session, err := h.facade.ClearCart(c.Request.Context(), CurrentOperatorID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWizardResponse(session))
}

// Review handles POST /api/wizard/:id/review.
func (h *WizardHandler) Review(c *gin.Context) {
	session, err := h.facade.ReviewWizard(c.Request.Context(), CurrentOperatorID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWizardResponse(session))
}

// Commit handles POST /api/wizard/:id/commit. The body is optional.
func (h *WizardHandler) Commit(c *gin.Context) {
	var req dto.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	order, err := h.facade.CommitWizard(c.Request.Context(), CurrentOperatorID(c), c.Param("id"), req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Cancel handles DELETE /api/wizard/:id.
func (h *WizardHandler) Cancel(c *gin.Context) {
	if err := h.facade.CancelWizard(c.Request.Context(), CurrentOperatorID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
