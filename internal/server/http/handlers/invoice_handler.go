package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/routemanager/internal/server/http/dto"
)

// InvoiceHandler derives and manages invoices.
type InvoiceHandler struct {
	facade InvoiceFacade
}

func NewInvoiceHandler(facade InvoiceFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade}
}

// Issue handles POST /api/orders/:id/invoice. Series and payment method are
// optional.
func (h *InvoiceHandler) Issue(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	invoice, err := h.facade.IssueInvoice(c.Request.Context(), orderID, req.Series, req.PaymentMethod)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInvoiceResponse(*invoice))
}

// ForOrder handles GET /api/orders/:id/invoice.
func (h *InvoiceHandler) ForOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	invoice, err := h.facade.OrderInvoice(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(*invoice))
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.facade.Invoices(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(invoices, toInvoiceResponse))
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	invoice, err := h.facade.Invoice(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(*invoice))
}

// Cancel handles POST /api/invoices/:id/cancel. Cancelling twice is not an error.
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	invoice, err := h.facade.CancelInvoice(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(*invoice))
}

// NextFolio handles GET /api/invoices/next-folio.
func (h *InvoiceHandler) NextFolio(c *gin.Context) {
	folio, err := h.facade.NextFolio(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FolioResponse{Folio: folio})
}
