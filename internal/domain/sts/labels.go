package sts

import "time"

// Sentinel values shared between the filter UI and the engine.
const (
	UnknownOPDName  = "OPD Tidak Diketahui"
	AllDataLabel    = "Semua Data"
	AllUnitsOption  = "Semua OPD"
	AllPaymentsName = "Semua"
	OtherPayment    = "Lainnya"
)

// excludedUnitSubstring removes the revenue agency's own deposits from every
// aggregate view. Hard business rule, matched case-insensitively against the
// resolved unit name.
const excludedUnitSubstring = "badan pendapatan daerah"

// paymentTypeNames maps the payment-method code stored on a transaction to
// its display label. Codes outside the map resolve to OtherPayment.
var paymentTypeNames = map[int]string{
	1: "Tunai",
	2: "E-Samsat/Giro/Transfer",
	3: "EDC",
	4: "Virtual Account",
	5: "QRIS",
}

// PaymentTypeName resolves a payment-method code to its label.
func PaymentTypeName(code int) string {
	if name, ok := paymentTypeNames[code]; ok {
		return name
	}
	return OtherPayment
}

var monthNames = [13]string{
	"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var monthNamesShort = [13]string{
	"", "Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// MonthName returns the Indonesian month name, or empty for an out-of-range
// month (such as the zero month of a dateless record).
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// MonthNameShort returns the abbreviated Indonesian month name.
func MonthNameShort(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNamesShort[month]
}

var dayNames = map[time.Weekday]string{
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
	time.Sunday:    "Minggu",
}

// DayName returns the Indonesian weekday name.
func DayName(d time.Weekday) string {
	return dayNames[d]
}
