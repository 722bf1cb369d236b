package handler

import (
	"context"
	"time"

	"github.com/bapenda-jatim/sts-monitoring/internal/application/dashboard"
	"github.com/bapenda-jatim/sts-monitoring/internal/domain/sts"
	"github.com/bapenda-jatim/sts-monitoring/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardService is the application service the dashboard endpoints use.
type DashboardService interface {
	Summary(ctx context.Context, criteria sts.FilterCriteria) (*dashboard.Summary, error)
	Transactions(ctx context.Context, criteria sts.FilterCriteria) ([]sts.EnrichedRecord, string, error)
	Options(ctx context.Context) (*dashboard.Options, error)
	Refresh(ctx context.Context) (*dashboard.RefreshResult, error)
}

// DashboardHandler serves the monitoring dashboard API.
type DashboardHandler struct {
	BaseHandler
	service DashboardService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/dashboard")
	{
		grp.GET("/summary", h.GetSummary)
		grp.GET("/transactions", h.GetTransactions)
		grp.GET("/options", h.GetOptions)
		grp.POST("/refresh", h.Refresh)
	}
}

// filterQuery carries the dashboard filter selection as query parameters.
// Dates use the 2006-01-02 layout. A valid period whose companion values
// are missing falls back to the unrestricted view; only structurally
// invalid values are rejected.
type filterQuery struct {
	Period  string   `form:"periode" binding:"omitempty,oneof=semua harian mingguan bulanan tahunan rentang"`
	Date    string   `form:"tanggal" binding:"omitempty,datetime=2006-01-02"`
	Week    int      `form:"minggu" binding:"omitempty,min=1,max=53"`
	Month   int      `form:"bulan" binding:"omitempty,min=1,max=12"`
	Year    int      `form:"tahun" binding:"omitempty,min=2000,max=2100"`
	Start   string   `form:"tanggal_awal" binding:"omitempty,datetime=2006-01-02"`
	End     string   `form:"tanggal_akhir" binding:"omitempty,datetime=2006-01-02"`
	Units   []string `form:"opd"`
	Payment string   `form:"pembayaran"`
}

func (q filterQuery) toCriteria() sts.FilterCriteria {
	period := sts.PeriodType(q.Period)
	if q.Period == "" {
		period = sts.PeriodAll
	}
	return sts.FilterCriteria{
		Period:    period,
		Date:      parseDate(q.Date),
		Week:      q.Week,
		Month:     q.Month,
		Year:      q.Year,
		StartDate: parseDate(q.Start),
		EndDate:   parseDate(q.End),
		Units:     q.Units,
		Payment:   q.Payment,
	}
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// GetSummary handles GET /dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	var query filterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), query.toCriteria())
	if err != nil {
		h.logger.Error("failed to build dashboard summary", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// transactionsResponse wraps the detail rows with their period label.
type transactionsResponse struct {
	PeriodLabel  string               `json:"label_periode"`
	Transactions []sts.EnrichedRecord `json:"transaksi"`
}

// GetTransactions handles GET /dashboard/transactions
func (h *DashboardHandler) GetTransactions(c *gin.Context) {
	var query filterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	rows, label, err := h.service.Transactions(c.Request.Context(), query.toCriteria())
	if err != nil {
		h.logger.Error("failed to list dashboard transactions", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, transactionsResponse{PeriodLabel: label, Transactions: rows})
}

// GetOptions handles GET /dashboard/options
func (h *DashboardHandler) GetOptions(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to derive filter options", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, options)
}

// Refresh handles POST /dashboard/refresh
func (h *DashboardHandler) Refresh(c *gin.Context) {
	result, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to refresh dataset", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
