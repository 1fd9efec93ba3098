package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketcore/ordersvc/internal/server/http/dto"
)

// ReportHandler manages aggregation endpoints.
type ReportHandler struct {
	facade ReportFacade
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

// Sales handles GET /api/reports/sales.
func (h *ReportHandler) Sales(c *gin.Context) {
	rows, err := h.facade.SalesReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.SalesReportRow, 0, len(rows))
	for _, row := range rows {
		response = append(response, dto.FromSalesReportRow(row))
	}
	c.JSON(http.StatusOK, response)
}
