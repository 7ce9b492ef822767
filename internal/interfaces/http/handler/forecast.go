package handler

import (
	"github.com/gin-gonic/gin"
	smartorderapp "github.com/supplychain/backend/internal/application/smartorder"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

// ForecastHandler exposes the forecast accuracy report.
type ForecastHandler struct {
	BaseHandler
	queryService *smartorderapp.QueryService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(queryService *smartorderapp.QueryService) *ForecastHandler {
	return &ForecastHandler{queryService: queryService}
}

// RegisterRoutes registers forecast routes on the API group
func (h *ForecastHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/forecast")
	group.GET("/accuracy", h.Accuracy)
}

// Accuracy returns forecast-vs-actual rows for closed weeks
func (h *ForecastHandler) Accuracy(c *gin.Context) {
	req := dto.ListRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.queryService.Accuracy(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}
