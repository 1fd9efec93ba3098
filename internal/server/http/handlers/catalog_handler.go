package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketcore/ordersvc/internal/server/http/dto"
)

// CatalogHandler manages product and customer endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Products handles GET /api/products. By default only active products are
// returned; ?all=true includes retired ones.
func (h *CatalogHandler) Products(c *gin.Context) {
	onlyActive := c.Query("all") != "true"

	products, err := h.facade.Products(c.Request.Context(), onlyActive)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(products) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		response = append(response, dto.FromProduct(&products[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Product handles GET /api/products/:id.
func (h *CatalogHandler) Product(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(product))
}

// Customer handles GET /api/customers/:id.
func (h *CatalogHandler) Customer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	customer, err := h.facade.Customer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCustomer(customer))
}
