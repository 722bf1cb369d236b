package dashboard

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/bapenda-jatim/sts-monitoring/internal/domain/sts"
	"go.uber.org/zap"
)

// DatasetProvider supplies the enriched dataset, typically through a TTL cache.
type DatasetProvider interface {
	Get(ctx context.Context) (sts.Dataset, error)
	Refresh(ctx context.Context) (sts.Dataset, error)
	LoadedAt() time.Time
}

// SummaryStore caches rendered summaries keyed by filter criteria.
type SummaryStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Summary is everything one dashboard view needs for a filter selection.
type Summary struct {
	PeriodLabel  string                    `json:"label_periode"`
	Metrics      sts.SummaryMetrics        `json:"metrik"`
	Units        []sts.UnitSummaryRow      `json:"per_opd"`
	Payments     []sts.PaymentSummaryRow   `json:"per_pembayaran"`
	DailyTrend   []sts.DailyTrendRow       `json:"tren_harian"`
	MonthlyTrend []sts.MonthlyTrendRow     `json:"tren_bulanan"`
	Treasurers   []sts.TreasurerSummaryRow `json:"per_bendahara"`
}

// Options holds the filter choices the dashboard can offer.
type Options struct {
	Units    []string  `json:"daftar_opd"`
	Payments []string  `json:"daftar_pembayaran"`
	Years    []int     `json:"daftar_tahun"`
	Months   []int     `json:"daftar_bulan"`
	Weeks    []int     `json:"daftar_minggu"`
	MinDate  time.Time `json:"tanggal_awal"`
	MaxDate  time.Time `json:"tanggal_akhir"`
}

// RefreshResult reports the outcome of a forced dataset reload.
type RefreshResult struct {
	Records  int       `json:"jumlah_record"`
	LoadedAt time.Time `json:"dimuat_pada"`
}

// Service assembles dashboard views from the enriched dataset.
type Service struct {
	data        DatasetProvider
	summaries   SummaryStore
	summaryTTL  time.Duration
	topUnits    int
	detailLimit int
	logger      *zap.Logger
	now         func() time.Time
}

// ServiceOption is a functional option for Service configuration
type ServiceOption func(*Service)

// WithNow overrides the time source, used by tests
func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a dashboard Service
func NewService(data DatasetProvider, summaries SummaryStore, summaryTTL time.Duration, topUnits, detailLimit int, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		data:        data,
		summaries:   summaries,
		summaryTTL:  summaryTTL,
		topUnits:    topUnits,
		detailLimit: detailLimit,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary builds the aggregated dashboard view for the given criteria.
// Results are served from the summary cache when a fresh entry exists.
func (s *Service) Summary(ctx context.Context, criteria sts.FilterCriteria) (*Summary, error) {
	key := criteria.CacheKey()

	if payload, ok, err := s.summaries.Get(ctx, key); err == nil && ok {
		var cached Summary
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("discarding undecodable cached summary", zap.String("key", key))
	} else if err != nil {
		s.logger.Warn("summary cache read failed", zap.Error(err))
	}

	ds, err := s.data.Get(ctx)
	if err != nil {
		return nil, err
	}

	filtered, label := sts.ApplyFilter(ds, criteria)
	summary := &Summary{
		PeriodLabel:  label,
		Metrics:      sts.ComputeSummaryMetrics(filtered),
		Units:        sts.ComputeUnitSummary(filtered, s.topUnits),
		Payments:     sts.ComputePaymentSummary(filtered),
		DailyTrend:   sts.ComputeDailyTrend(filtered),
		MonthlyTrend: sts.ComputeMonthlyTrend(filtered),
		Treasurers:   sts.ComputeTreasurerSummary(filtered),
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.summaries.Set(ctx, key, payload, s.summaryTTL); err != nil {
			s.logger.Warn("summary cache write failed", zap.Error(err))
		}
	}

	return summary, nil
}

// Transactions returns the filtered detail rows, newest first, capped at the
// configured detail limit. The period label accompanies the rows.
func (s *Service) Transactions(ctx context.Context, criteria sts.FilterCriteria) ([]sts.EnrichedRecord, string, error) {
	ds, err := s.data.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	filtered, label := sts.ApplyFilter(ds, criteria)
	return sts.TransactionDetail(filtered, s.detailLimit), label, nil
}

// Options derives the selectable filter values from the dataset. With no
// dated rows the date range degrades to the current day.
func (s *Service) Options(ctx context.Context) (*Options, error) {
	ds, err := s.data.Get(ctx)
	if err != nil {
		return nil, err
	}

	unitSet := make(map[string]struct{})
	paymentSet := make(map[string]struct{})
	yearSet := make(map[int]struct{})
	monthSet := make(map[int]struct{})
	weekSet := make(map[int]struct{})
	var minDate, maxDate time.Time

	for _, r := range ds {
		unitSet[r.NamaOPD] = struct{}{}
		paymentSet[r.NamaPembayaran] = struct{}{}
		if !r.HasDate() {
			continue
		}
		yearSet[r.Tahun] = struct{}{}
		monthSet[r.Bulan] = struct{}{}
		weekSet[r.MingguTahun] = struct{}{}
		if minDate.IsZero() || r.Tanggal.Before(minDate) {
			minDate = r.Tanggal
		}
		if maxDate.IsZero() || r.Tanggal.After(maxDate) {
			maxDate = r.Tanggal
		}
	}

	opts := &Options{
		Units:    []string{sts.AllUnitsOption},
		Payments: []string{sts.AllPaymentsName},
	}

	units := make([]string, 0, len(unitSet))
	for u := range unitSet {
		units = append(units, u)
	}
	sort.Strings(units)
	opts.Units = append(opts.Units, units...)

	payments := make([]string, 0, len(paymentSet))
	for p := range paymentSet {
		payments = append(payments, p)
	}
	sort.Strings(payments)
	opts.Payments = append(opts.Payments, payments...)

	for y := range yearSet {
		opts.Years = append(opts.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))

	for m := range monthSet {
		opts.Months = append(opts.Months, m)
	}
	sort.Ints(opts.Months)

	for w := range weekSet {
		opts.Weeks = append(opts.Weeks, w)
	}
	sort.Ints(opts.Weeks)

	if minDate.IsZero() {
		today := s.now()
		minDate = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
		maxDate = minDate
	}
	opts.MinDate = minDate
	opts.MaxDate = maxDate

	return opts, nil
}

// Refresh forces a dataset reload and reports how many records came back
func (s *Service) Refresh(ctx context.Context) (*RefreshResult, error) {
	ds, err := s.data.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("dataset refreshed", zap.Int("records", len(ds)))
	return &RefreshResult{Records: len(ds), LoadedAt: s.data.LoadedAt()}, nil
}
