package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/spimexpulse/internal/domain/dto"
	"github.com/guttosm/spimexpulse/internal/domain/models"
	"github.com/guttosm/spimexpulse/internal/middleware"
	"github.com/guttosm/spimexpulse/internal/service"
)

const dateLayout = "2006-01-02"

// Handler provides HTTP handlers for the trading results endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Delegate to the service layer
//   - Translate results into response DTOs
type Handler struct {
	svc service.ResultsService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.ResultsService) *Handler {
	return &Handler{svc: svc}
}

// GetAggregate godoc
// @Summary      Aggregate trading results by oil grade
// @Description  Sums volume, amount and contract count for an oil grade and reports the largest single-day volume. Both dates are optional and inclusive.
// @Tags         results
// @Produce      json
// @Param        oil_id      query     string  true   "Oil grade code (first four characters of the product id)" example(A592)
// @Param        start_date  query     string  false  "Start date in YYYY-MM-DD" example(2024-03-01)
// @Param        end_date    query     string  false  "End date in YYYY-MM-DD" example(2024-03-05)
// @Success      200         {object}  dto.AggregateResponse  "Success"
// @Failure      400         {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404         {object}  dto.ErrorResponse      "Not Found"
// @Failure      500         {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/aggregate [get]
func (h *Handler) GetAggregate(c *gin.Context) {
	oilID := strings.TrimSpace(c.Query("oil_id"))
	if oilID == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "oil_id is required", nil)
		return
	}

	startDate, ok := optionalDate(c, "start_date")
	if !ok {
		return
	}
	endDate, ok := optionalDate(c, "end_date")
	if !ok {
		return
	}

	agg, err := h.svc.GetAggregate(c.Request.Context(), oilID, startDate, endDate)
	switch {
	case errors.Is(err, service.ErrInvalidRange):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid date range", err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch aggregates", err)
		return
	case agg == nil:
		middleware.AbortWithError(c, http.StatusNotFound, "no data found", nil)
		return
	}

	resp := dto.AggregateResponse{
		OilID:          agg.OilID,
		StartDate:      c.Query("start_date"),
		EndDate:        c.Query("end_date"),
		TotalVolume:    agg.TotalVolume,
		TotalAmount:    agg.TotalAmount,
		TotalContracts: agg.TotalContracts,
		MaxDailyVolume: agg.MaxDailyVolume,
	}
	c.JSON(http.StatusOK, resp)
}

// ListResults godoc
// @Summary      List trading results
// @Description  Returns stored trading results, newest date first. All filters are optional.
// @Tags         results
// @Produce      json
// @Param        date               query     string  false  "Trading date in YYYY-MM-DD" example(2024-03-05)
// @Param        oil_id             query     string  false  "Oil grade code" example(A592)
// @Param        delivery_basis_id  query     string  false  "Delivery basis code" example(ANK)
// @Param        delivery_type_id   query     string  false  "Delivery type code" example(F)
// @Param        limit              query     int     false  "Maximum rows (default 100, max 1000)" example(50)
// @Success      200                {object}  dto.ResultsResponse  "Success"
// @Failure      400                {object}  dto.ErrorResponse    "Bad Request"
// @Failure      500                {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/results [get]
func (h *Handler) ListResults(c *gin.Context) {
	date, ok := optionalDate(c, "date")
	if !ok {
		return
	}
	limit, ok := optionalInt(c, "limit")
	if !ok {
		return
	}

	filter := models.ResultsFilter{
		Date:            date,
		OilID:           c.Query("oil_id"),
		DeliveryBasisID: c.Query("delivery_basis_id"),
		DeliveryTypeID:  c.Query("delivery_type_id"),
		Limit:           limit,
	}
	results, err := h.svc.ListResults(c.Request.Context(), filter)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list results", err)
		return
	}
	if results == nil {
		results = []models.TradingRecord{}
	}
	c.JSON(http.StatusOK, dto.ResultsResponse{Count: len(results), Results: results})
}

// LastTradingDates godoc
// @Summary      Last trading dates
// @Description  Returns the most recent trading dates present in storage, newest first.
// @Tags         results
// @Produce      json
// @Param        limit  query     int  false  "Number of dates (default 10, max 100)" example(5)
// @Success      200    {object}  dto.DatesResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/dates [get]
func (h *Handler) LastTradingDates(c *gin.Context) {
	limit, ok := optionalInt(c, "limit")
	if !ok {
		return
	}

	dates, err := h.svc.LastTradingDates(c.Request.Context(), limit)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list trading dates", err)
		return
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(dateLayout))
	}
	c.JSON(http.StatusOK, dto.DatesResponse{Dates: out})
}

// optionalDate parses query parameter name as YYYY-MM-DD. It writes a 400 and
// returns ok=false when the value is present but malformed.
func optionalDate(c *gin.Context, name string) (*time.Time, bool) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, true
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid "+name+" format, expected YYYY-MM-DD", err)
		return nil, false
	}
	return &d, true
}

func optionalInt(c *gin.Context, name string) (int, bool) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid "+name+", expected a non-negative integer", err)
		return 0, false
	}
	return n, true
}
