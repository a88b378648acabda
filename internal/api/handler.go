package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/floorsheet/internal/domain/dto"
	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/guttosm/floorsheet/internal/middleware"
	"github.com/guttosm/floorsheet/internal/report"
	"github.com/guttosm/floorsheet/internal/service"
)

// Handler serves the stored buyer/seller report.
type Handler struct {
	svc service.BrokerService
}

// NewHandler returns a Handler backed by svc.
func NewHandler(svc service.BrokerService) *Handler {
	return &Handler{svc: svc}
}

// ListBrokers godoc
// @Summary      List broker activity
// @Description  Returns report rows filtered by trade date, script and broker, ordered by key
// @Tags         brokers
// @Produce      json
// @Param        date    query     string  false  "Trade date as it appears in the floorsheet" example(2024-01-01)
// @Param        symbol  query     string  false  "Script symbol" example(NABIL)
// @Param        broker  query     string  false  "Broker number" example(58)
// @Param        limit   query     int     false  "Maximum rows (default 100, max 1000)"
// @Success      200     {object}  dto.BrokerListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/v1/brokers [get]
func (h *Handler) ListBrokers(c *gin.Context) {
	// ─── Collect optional filters ─────────────────────────────
	filter := models.BrokerFilter{
		Date:   strings.TrimSpace(c.Query("date")),
		Script: strings.TrimSpace(c.Query("symbol")),
		Broker: strings.TrimSpace(c.Query("broker")),
	}
	// ─── Validate "limit" param ───────────────────────────────
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.AbortWithError(c, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		filter.Limit = n
	}

	// ─── Query service (with request context) ─────────────────
	rows, err := h.svc.ListActivity(c.Request.Context(), filter)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch broker activity", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBrokerListResponse(rows))
}

// LookupBroker godoc
// @Summary      Look up a report row by key
// @Description  Finds the row for a "date;symbol;broker" key. Semicolons must be sent URL-encoded (%3B).
// @Tags         brokers
// @Produce      json
// @Param        key  query     string  true  "Composite key" example(2024-01-01;NABIL;58)
// @Success      200  {object}  dto.BrokerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/brokers/lookup [get]
func (h *Handler) LookupBroker(c *gin.Context) {
	// ─── Validate "key" param ─────────────────────────────────
	key := c.Query("key")
	if strings.TrimSpace(key) == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "key is required", nil)
		return
	}

	// ─── Query service and map errors ─────────────────────────
	row, err := h.svc.Lookup(c.Request.Context(), key)
	switch {
	case errors.Is(err, report.ErrKeyShape):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid key", err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to look up key", err)
		return
	case row == nil:
		middleware.AbortWithError(c, http.StatusNotFound, "no data found", nil)
		return
	}
	c.JSON(http.StatusOK, dto.NewBrokerResponse(*row))
}

// LatestRun godoc
// @Summary      Latest report run
// @Description  Summary of the most recent persisted pipeline run
// @Tags         runs
// @Produce      json
// @Success      200  {object}  dto.RunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/runs/latest [get]
func (h *Handler) LatestRun(c *gin.Context) {
	run, err := h.svc.LatestRun(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch latest run", err)
		return
	}
	if run == nil {
		middleware.AbortWithError(c, http.StatusNotFound, "no runs recorded", nil)
		return
	}
	c.JSON(http.StatusOK, dto.NewRunResponse(run))
}
