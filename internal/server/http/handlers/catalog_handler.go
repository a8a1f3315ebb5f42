package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/routemanager/internal/server/http/dto"
	"github.com/polkiloo/routemanager/internal/usecase"
)

// CatalogHandler serves clients, routes and products.
type CatalogHandler struct {
	facade CatalogFacade
}

func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// ListClients handles GET /api/clients?q=.
func (h *CatalogHandler) ListClients(c *gin.Context) {
	clients, err := h.facade.Clients(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(clients, toClientResponse))
}

func (h *CatalogHandler) GetClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.facade.Client(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClientResponse(*client))
}

// CreateClient handles POST /api/clients.
func (h *CatalogHandler) CreateClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	client, err := h.facade.CreateClient(c.Request.Context(), usecase.ClientInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		RouteID: req.RouteID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClientResponse(*client))
}

func (h *CatalogHandler) ListRoutes(c *gin.Context) {
	routes, err := h.facade.Routes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(routes, toRouteResponse))
}

// ListProducts handles GET /api/products. Only active products are listed.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(products, toProductResponse))
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// CreateProduct handles POST /api/products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	in, ok := bindProduct(c)
	if !ok {
		return
	}
	product, err := h.facade.CreateProduct(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*product))
}

// UpdateProduct handles PUT /api/products/:id.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, ok := bindProduct(c)
	if !ok {
		return
	}
	product, err := h.facade.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// bindProduct decodes a product payload. Products are active unless the
// body says otherwise.
func bindProduct(c *gin.Context) (usecase.ProductInput, bool) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return usecase.ProductInput{}, false
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return usecase.ProductInput{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		Active:   active,
	}, true
}
