package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bapenda-jatim/sts-monitoring/internal/application/dashboard"
	"github.com/bapenda-jatim/sts-monitoring/internal/domain/shared"
	"github.com/bapenda-jatim/sts-monitoring/internal/domain/sts"
	"github.com/bapenda-jatim/sts-monitoring/internal/interfaces/http/dto"
	"github.com/bapenda-jatim/sts-monitoring/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) Summary(ctx context.Context, criteria sts.FilterCriteria) (*dashboard.Summary, error) {
	args := m.Called(ctx, criteria)
	summary, _ := args.Get(0).(*dashboard.Summary)
	return summary, args.Error(1)
}

func (m *mockDashboardService) Transactions(ctx context.Context, criteria sts.FilterCriteria) ([]sts.EnrichedRecord, string, error) {
	args := m.Called(ctx, criteria)
	rows, _ := args.Get(0).([]sts.EnrichedRecord)
	return rows, args.String(1), args.Error(2)
}

func (m *mockDashboardService) Options(ctx context.Context) (*dashboard.Options, error) {
	args := m.Called(ctx)
	options, _ := args.Get(0).(*dashboard.Options)
	return options, args.Error(1)
}

func (m *mockDashboardService) Refresh(ctx context.Context) (*dashboard.RefreshResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*dashboard.RefreshResult)
	return result, args.Error(1)
}

func setupDashboardRouter(service DashboardService) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	api := router.Group("/api/v1")
	NewDashboardHandler(service, zap.NewNop()).RegisterRoutes(api)
	return router
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetSummary(t *testing.T) {
	service := new(mockDashboardService)
	service.On("Summary", mock.Anything, sts.FilterCriteria{
		Period: sts.PeriodMonth,
		Month:  3,
		Year:   2025,
		Units:  []string{"Dinas Kesehatan"},
	}).Return(&dashboard.Summary{PeriodLabel: "Maret 2025"}, nil)

	router := setupDashboardRouter(service)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/dashboard/summary?periode=bulanan&bulan=3&tahun=2025&opd=Dinas+Kesehatan", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Maret 2025", data["label_periode"])
	service.AssertExpectations(t)
}

func TestGetSummaryDefaultsToUnrestricted(t *testing.T) {
	service := new(mockDashboardService)
	service.On("Summary", mock.Anything, sts.FilterCriteria{Period: sts.PeriodAll}).
		Return(&dashboard.Summary{PeriodLabel: sts.AllDataLabel}, nil)

	router := setupDashboardRouter(service)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestGetSummaryRangeDates(t *testing.T) {
	service := new(mockDashboardService)
	service.On("Summary", mock.Anything, sts.FilterCriteria{
		Period:    sts.PeriodRange,
		StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	}).Return(&dashboard.Summary{}, nil)

	router := setupDashboardRouter(service)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/dashboard/summary?periode=rentang&tanggal_awal=2025-01-01&tanggal_akhir=2025-01-31", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestGetSummaryRejectsUnknownPeriod(t *testing.T) {
	service := new(mockDashboardService)

	router := setupDashboardRouter(service)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary?periode=weekly", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	service.AssertNotCalled(t, "Summary", mock.Anything, mock.Anything)
}

func TestGetSummaryRejectsMalformedDate(t *testing.T) {
	service := new(mockDashboardService)

	router := setupDashboardRouter(service)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/dashboard/summary?periode=harian&tanggal=01-05-2025", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSummaryDataUnavailable(t *testing.T) {
	service := new(mockDashboardService)
	service.On("Summary", mock.Anything, mock.Anything).Return(nil, shared.ErrDataUnavailable)

	router := setupDashboardRouter(service)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeDataUnavailable, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)
}

func TestGetTransactions(t *testing.T) {
	service := new(mockDashboardService)
	rows := []sts.EnrichedRecord{{KodeBilling: "B-1", Nominal: decimal.NewFromInt(100)}}
	service.On("Transactions", mock.Anything, sts.FilterCriteria{Period: sts.PeriodYear, Year: 2025}).
		Return(rows, "Tahun 2025", nil)

	router := setupDashboardRouter(service)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/dashboard/transactions?periode=tahunan&tahun=2025", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Tahun 2025", data["label_periode"])
	assert.Len(t, data["transaksi"], 1)
}

func TestGetOptions(t *testing.T) {
	service := new(mockDashboardService)
	service.On("Options", mock.Anything).Return(&dashboard.Options{
		Units:    []string{sts.AllUnitsOption, "Dinas Kesehatan"},
		Payments: []string{sts.AllPaymentsName, "Tunai"},
		Years:    []int{2025, 2024},
	}, nil)

	router := setupDashboardRouter(service)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/options", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, data["daftar_opd"], 2)
}

func TestRefresh(t *testing.T) {
	service := new(mockDashboardService)
	service.On("Refresh", mock.Anything).Return(&dashboard.RefreshResult{
		Records:  1200,
		LoadedAt: time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC),
	}, nil)

	router := setupDashboardRouter(service)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/refresh", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1200), data["jumlah_record"])
}
