package sts

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// SummaryMetrics are the headline numbers shown on every dashboard view.
type SummaryMetrics struct {
	TotalAmount decimal.Decimal `json:"total_penerimaan"`
	Count       int64           `json:"jumlah_sts"`
	MeanAmount  decimal.Decimal `json:"rata_rata"`
	UnitCount   int64           `json:"jumlah_opd"`
	MinAmount   decimal.Decimal `json:"min_nominal"`
	MaxAmount   decimal.Decimal `json:"max_nominal"`
}

// UnitSummaryRow is one organizational unit's receipt statistics.
type UnitSummaryRow struct {
	NamaOPD string          `json:"nama_opd"`
	Total   decimal.Decimal `json:"total"`
	Count   int64           `json:"jumlah"`
	Mean    decimal.Decimal `json:"rata_rata"`
	Min     decimal.Decimal `json:"minimum"`
	Max     decimal.Decimal `json:"maksimum"`
}

// PaymentSummaryRow is one payment method's share of receipts.
type PaymentSummaryRow struct {
	NamaPembayaran string          `json:"jenis_pembayaran"`
	Total          decimal.Decimal `json:"total"`
	Count          int64           `json:"jumlah"`
	Percentage     decimal.Decimal `json:"persentase"`
}

// DailyTrendRow is one day's receipts. Days with no receipts are absent.
type DailyTrendRow struct {
	Tanggal time.Time       `json:"tanggal"`
	Total   decimal.Decimal `json:"total"`
	Count   int64           `json:"jumlah"`
}

// MonthlyTrendRow is one calendar month's receipts.
type MonthlyTrendRow struct {
	Tahun   int             `json:"tahun"`
	Bulan   int             `json:"bulan"`
	Total   decimal.Decimal `json:"total"`
	Count   int64           `json:"jumlah"`
	Periode string          `json:"periode"` // e.g. "Mar 2025"
}

// TreasurerSummaryRow is one treasurer's receipt statistics.
type TreasurerSummaryRow struct {
	NamaKasir string          `json:"nama_kasir"`
	NIPKasir  string          `json:"nip_kasir"`
	Total     decimal.Decimal `json:"total"`
	Count     int64           `json:"jumlah"`
	NamaOPD   string          `json:"opd"` // modal unit among the treasurer's rows
}

// ComputeSummaryMetrics returns the headline metrics. All values are zero
// for an empty dataset.
func ComputeSummaryMetrics(ds Dataset) SummaryMetrics {
	m := SummaryMetrics{}
	if len(ds) == 0 {
		return m
	}

	units := make(map[string]struct{})
	m.MinAmount = ds[0].Nominal
	m.MaxAmount = ds[0].Nominal
	for _, r := range ds {
		m.TotalAmount = m.TotalAmount.Add(r.Nominal)
		m.Count++
		units[r.NamaOPD] = struct{}{}
		if r.Nominal.LessThan(m.MinAmount) {
			m.MinAmount = r.Nominal
		}
		if r.Nominal.GreaterThan(m.MaxAmount) {
			m.MaxAmount = r.Nominal
		}
	}
	m.MeanAmount = m.TotalAmount.Div(decimal.NewFromInt(m.Count))
	m.UnitCount = int64(len(units))
	return m
}

// ComputeUnitSummary groups receipts by unit name, sorted descending by
// total. topN > 0 truncates the result; ties keep first-encountered order.
func ComputeUnitSummary(ds Dataset, topN int) []UnitSummaryRow {
	order := make([]string, 0)
	byUnit := make(map[string]*UnitSummaryRow)

	for _, r := range ds {
		row, ok := byUnit[r.NamaOPD]
		if !ok {
			row = &UnitSummaryRow{NamaOPD: r.NamaOPD, Min: r.Nominal, Max: r.Nominal}
			byUnit[r.NamaOPD] = row
			order = append(order, r.NamaOPD)
		}
		row.Total = row.Total.Add(r.Nominal)
		row.Count++
		if r.Nominal.LessThan(row.Min) {
			row.Min = r.Nominal
		}
		if r.Nominal.GreaterThan(row.Max) {
			row.Max = r.Nominal
		}
	}

	rows := make([]UnitSummaryRow, 0, len(order))
	for _, name := range order {
		row := byUnit[name]
		row.Mean = row.Total.Div(decimal.NewFromInt(row.Count))
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})

	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

// ComputePaymentSummary groups receipts by payment label with each label's
// percentage of the grand total (2 decimals), sorted descending by total.
// Percentages are zero when the grand total is zero.
func ComputePaymentSummary(ds Dataset) []PaymentSummaryRow {
	order := make([]string, 0)
	byLabel := make(map[string]*PaymentSummaryRow)
	grand := decimal.Zero

	for _, r := range ds {
		row, ok := byLabel[r.NamaPembayaran]
		if !ok {
			row = &PaymentSummaryRow{NamaPembayaran: r.NamaPembayaran}
			byLabel[r.NamaPembayaran] = row
			order = append(order, r.NamaPembayaran)
		}
		row.Total = row.Total.Add(r.Nominal)
		row.Count++
		grand = grand.Add(r.Nominal)
	}

	hundred := decimal.NewFromInt(100)
	rows := make([]PaymentSummaryRow, 0, len(order))
	for _, label := range order {
		row := byLabel[label]
		if !grand.IsZero() {
			row.Percentage = row.Total.Div(grand).Mul(hundred).Round(2)
		}
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows
}

// ComputeDailyTrend groups receipts by calendar date, ascending. Dateless
// records are skipped; gaps are absent rows, not zero-filled.
func ComputeDailyTrend(ds Dataset) []DailyTrendRow {
	byDay := make(map[time.Time]*DailyTrendRow)
	for _, r := range ds {
		if !r.HasDate() {
			continue
		}
		row, ok := byDay[r.Tanggal]
		if !ok {
			row = &DailyTrendRow{Tanggal: r.Tanggal}
			byDay[r.Tanggal] = row
		}
		row.Total = row.Total.Add(r.Nominal)
		row.Count++
	}

	rows := make([]DailyTrendRow, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Tanggal.Before(rows[j].Tanggal)
	})
	return rows
}

// ComputeMonthlyTrend groups receipts by (year, month), ascending, with a
// short period label.
func ComputeMonthlyTrend(ds Dataset) []MonthlyTrendRow {
	type ym struct {
		year, month int
	}
	byMonth := make(map[ym]*MonthlyTrendRow)
	for _, r := range ds {
		if !r.HasDate() {
			continue
		}
		key := ym{r.Tahun, r.Bulan}
		row, ok := byMonth[key]
		if !ok {
			row = &MonthlyTrendRow{
				Tahun:   r.Tahun,
				Bulan:   r.Bulan,
				Periode: MonthNameShort(r.Bulan) + " " + strconv.Itoa(r.Tahun),
			}
			byMonth[key] = row
		}
		row.Total = row.Total.Add(r.Nominal)
		row.Count++
	}

	rows := make([]MonthlyTrendRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Tahun != rows[j].Tahun {
			return rows[i].Tahun < rows[j].Tahun
		}
		return rows[i].Bulan < rows[j].Bulan
	})
	return rows
}

// ComputeTreasurerSummary groups receipts by treasurer, sorted descending by
// total. NamaOPD is the unit the treasurer deposited for most often; ties go
// to the unit seen first in row order.
func ComputeTreasurerSummary(ds Dataset) []TreasurerSummaryRow {
	type acc struct {
		row       TreasurerSummaryRow
		unitCount map[string]int
		unitOrder []string
	}
	order := make([]string, 0)
	byKasir := make(map[string]*acc)

	for _, r := range ds {
		key := r.NamaKasir + "\x00" + r.NIPKasir
		a, ok := byKasir[key]
		if !ok {
			a = &acc{
				row:       TreasurerSummaryRow{NamaKasir: r.NamaKasir, NIPKasir: r.NIPKasir},
				unitCount: make(map[string]int),
			}
			byKasir[key] = a
			order = append(order, key)
		}
		a.row.Total = a.row.Total.Add(r.Nominal)
		a.row.Count++
		if _, seen := a.unitCount[r.NamaOPD]; !seen {
			a.unitOrder = append(a.unitOrder, r.NamaOPD)
		}
		a.unitCount[r.NamaOPD]++
	}

	rows := make([]TreasurerSummaryRow, 0, len(order))
	for _, key := range order {
		a := byKasir[key]
		best, bestCount := "", -1
		for _, unit := range a.unitOrder {
			if a.unitCount[unit] > bestCount {
				best, bestCount = unit, a.unitCount[unit]
			}
		}
		a.row.NamaOPD = best
		rows = append(rows, a.row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows
}

// TransactionDetail returns up to limit records, newest receive date first.
// limit <= 0 returns everything.
func TransactionDetail(ds Dataset, limit int) []EnrichedRecord {
	rows := make([]EnrichedRecord, len(ds))
	copy(rows, ds)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TanggalTerima.After(rows[j].TanggalTerima)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
