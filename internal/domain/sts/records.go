package sts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a raw STS (Surat Tanda Setoran) deposit receipt as read
// from the source store. This system only ever reads transactions; the
// upstream cashier application owns the write path.
type Transaction struct {
	KodeBilling        string          `json:"kode_billing"`
	Ayat               string          `json:"ayat"`
	Nominal            decimal.Decimal `json:"nominal"`
	TanggalTerima      time.Time       `json:"tanggal_terima"`
	TanggalSetor       time.Time       `json:"tanggal_setor"`
	TanggalValidasi    time.Time       `json:"tanggal_validasi_bank"`
	JenisPembayaran    int             `json:"jenis_pembayaran"`
	KodeKasir          int64           `json:"kode_kasir"`
	KeteranganUmum     string          `json:"keterangan_umum"`
	KeteranganKhusus   string          `json:"keterangan_khusus"`
}

// OPD is an organizational unit reference row.
type OPD struct {
	Kode       string `json:"kode_opd"`
	Nama       string `json:"nama_opd"`
	Tahun      int    `json:"tahun"`
	KodeQRCode string `json:"kode_qrcode"`
}

// Rekening is a chart-of-accounts reference row. Level is derived from the
// code length the same way the upstream import does it.
type Rekening struct {
	Kode  string `json:"kode_rekening"`
	Nama  string `json:"nama_rekening"`
	Tahun int    `json:"tahun"`
	SKT   string `json:"skt"`
	Level int    `json:"level"`
}

// RekeningLevel derives the hierarchy level from the account code length.
func RekeningLevel(kode string) int {
	if len(kode) <= 12 {
		return len(kode) / 2
	}
	return len(kode) / 3
}

// Bendahara is a cashier/treasurer identity reference row.
type Bendahara struct {
	IDSibaku int64  `json:"id_sibaku"`
	Nama     string `json:"nama"`
	NIP      string `json:"nip"`
	KodeOPD  string `json:"kode_opd,omitempty"`
}

// ReferenceData bundles the three lookup tables the enrichment pipeline
// joins against.
type ReferenceData struct {
	Units      []OPD
	Accounts   []Rekening
	Treasurers []Bendahara
}

// EnrichedRecord is a Transaction joined with its reference rows plus the
// derived calendar and payment fields. Rows for the excluded unit never
// appear here.
type EnrichedRecord struct {
	KodeBilling      string          `json:"kode_billing"`
	KodeOPD          string          `json:"kode_opd"`
	NamaOPD          string          `json:"nama_opd"`
	KodeRekening     string          `json:"kode_rekening"`
	NamaRekening     string          `json:"nama_rekening"`
	NamaKasir        string          `json:"nama_kasir"`
	NIPKasir         string          `json:"nip_kasir"`
	Nominal          decimal.Decimal `json:"nominal"`
	TanggalTerima    time.Time       `json:"tanggal_terima"`
	TanggalSetor     time.Time       `json:"tanggal_setor"`
	TanggalValidasi  time.Time       `json:"tanggal_validasi_bank"`
	Tanggal          time.Time       `json:"tanggal"` // date-only bucket
	Tahun            int             `json:"tahun"`
	Bulan            int             `json:"bulan"`
	NamaBulan        string          `json:"nama_bulan"`
	MingguTahun      int             `json:"minggu_tahun"` // ISO week
	Hari             string          `json:"hari"`
	JenisPembayaran  int             `json:"jenis_pembayaran"`
	NamaPembayaran   string          `json:"jenis_pembayaran_nama"`
	KeteranganUmum   string          `json:"keterangan_umum"`
	KeteranganKhusus string          `json:"keterangan_khusus"`
}

// HasDate reports whether the record carries a usable receive date. Records
// without one are excluded from calendar-bucketed filters but still count
// toward unrestricted totals.
func (r EnrichedRecord) HasDate() bool {
	return !r.TanggalTerima.IsZero()
}

// Dataset is an immutable, enriched view over the transaction table.
// Filter and aggregation operations return copies and never mutate it.
type Dataset []EnrichedRecord

// SourceRepository loads the raw transaction table and the three reference
// tables from a data source. Implementations wrap read failures in
// shared.ErrDataUnavailable.
type SourceRepository interface {
	FetchTransactions(ctx context.Context) ([]Transaction, error)
	FetchUnits(ctx context.Context) ([]OPD, error)
	FetchAccounts(ctx context.Context) ([]Rekening, error)
	FetchTreasurers(ctx context.Context) ([]Bendahara, error)
}
