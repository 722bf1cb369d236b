package sts

import (
	"fmt"
	"time"
)

// PeriodType selects the calendar bucket a filter restricts to.
type PeriodType string

const (
	PeriodAll   PeriodType = "semua"
	PeriodDay   PeriodType = "harian"
	PeriodWeek  PeriodType = "mingguan"
	PeriodMonth PeriodType = "bulanan"
	PeriodYear  PeriodType = "tahunan"
	PeriodRange PeriodType = "rentang"
)

// FilterCriteria describes one dashboard filter selection. Zero values mean
// "not provided"; a period type whose required parameters are missing or
// inconsistent falls back to the unrestricted view rather than erroring,
// so a half-filled filter form always renders something.
type FilterCriteria struct {
	Period    PeriodType
	Date      time.Time
	Week      int
	Month     int
	Year      int
	StartDate time.Time
	EndDate   time.Time
	Units     []string // empty or containing AllUnitsOption = no restriction
	Payment   string   // empty or AllPaymentsName = no restriction
}

// CacheKey renders the criteria as a stable string usable as a cache key.
func (c FilterCriteria) CacheKey() string {
	return fmt.Sprintf("period=%s|date=%s|week=%d|month=%d|year=%d|start=%s|end=%s|units=%v|payment=%s",
		c.Period, c.Date.Format("2006-01-02"), c.Week, c.Month, c.Year,
		c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"),
		c.Units, c.Payment)
}

// periodComplete reports whether the criteria carry everything the selected
// period type needs.
func (c FilterCriteria) periodComplete() bool {
	switch c.Period {
	case PeriodDay:
		return !c.Date.IsZero()
	case PeriodWeek:
		return c.Week > 0 && c.Year > 0
	case PeriodMonth:
		return c.Month >= 1 && c.Month <= 12 && c.Year > 0
	case PeriodYear:
		return c.Year > 0
	case PeriodRange:
		return !c.StartDate.IsZero() && !c.EndDate.IsZero() && !c.StartDate.After(c.EndDate)
	default:
		return false
	}
}

// ApplyFilter returns the subset of ds matching the criteria together with a
// human-readable label describing the active period. An empty result is
// valid; downstream aggregations yield zeros for it.
func ApplyFilter(ds Dataset, c FilterCriteria) (Dataset, string) {
	label := AllDataLabel
	match := func(EnrichedRecord) bool { return true }

	if c.periodComplete() {
		switch c.Period {
		case PeriodDay:
			day := dateOnly(c.Date)
			match = func(r EnrichedRecord) bool { return r.HasDate() && r.Tanggal.Equal(day) }
			label = fmt.Sprintf("%d %s %d", day.Day(), MonthName(int(day.Month())), day.Year())
		case PeriodWeek:
			match = func(r EnrichedRecord) bool {
				return r.HasDate() && r.MingguTahun == c.Week && r.Tahun == c.Year
			}
			label = fmt.Sprintf("Minggu ke-%d, %d", c.Week, c.Year)
		case PeriodMonth:
			match = func(r EnrichedRecord) bool {
				return r.HasDate() && r.Bulan == c.Month && r.Tahun == c.Year
			}
			label = fmt.Sprintf("%s %d", MonthName(c.Month), c.Year)
		case PeriodYear:
			match = func(r EnrichedRecord) bool { return r.HasDate() && r.Tahun == c.Year }
			label = fmt.Sprintf("Tahun %d", c.Year)
		case PeriodRange:
			start, end := dateOnly(c.StartDate), dateOnly(c.EndDate)
			match = func(r EnrichedRecord) bool {
				return r.HasDate() && !r.Tanggal.Before(start) && !r.Tanggal.After(end)
			}
			label = fmt.Sprintf("%s - %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
		}
	}

	unitSet := unitRestriction(c.Units)
	paymentRestricted := c.Payment != "" && c.Payment != AllPaymentsName

	out := make(Dataset, 0, len(ds))
	for _, r := range ds {
		if !match(r) {
			continue
		}
		if unitSet != nil {
			if _, ok := unitSet[r.NamaOPD]; !ok {
				continue
			}
		}
		if paymentRestricted && r.NamaPembayaran != c.Payment {
			continue
		}
		out = append(out, r)
	}

	return out, label
}

// unitRestriction returns nil when no unit restriction applies.
func unitRestriction(units []string) map[string]struct{} {
	if len(units) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(units))
	for _, u := range units {
		if u == AllUnitsOption {
			return nil
		}
		set[u] = struct{}{}
	}
	return set
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
