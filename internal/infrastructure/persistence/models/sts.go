package models

import (
	"time"

	"github.com/bapenda-jatim/sts-monitoring/internal/domain/sts"
	"github.com/shopspring/decimal"
)

// TransaksiModel is the persistence model for a deposit receipt (STS).
type TransaksiModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	KodeBilling      string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Ayat             string          `gorm:"type:varchar(50);index"`
	Nominal          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TanggalTerima    *time.Time      `gorm:"index:idx_transaksi_tanggal"`
	TanggalSetor     *time.Time      ``
	TanggalValidasi  *time.Time      `gorm:"column:tanggal_validasi_bank"`
	JenisPembayaran  int             `gorm:"default:1;index"`
	KodeKasir        int64           `gorm:"index"`
	KeteranganUmum   string          `gorm:"type:text"`
	KeteranganKhusus string          `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (TransaksiModel) TableName() string {
	return "transaksi"
}

// ToDomain converts the persistence model to a domain Transaction.
// A NULL receive date becomes the zero time.
func (m *TransaksiModel) ToDomain() sts.Transaction {
	return sts.Transaction{
		KodeBilling:      m.KodeBilling,
		Ayat:             m.Ayat,
		Nominal:          m.Nominal,
		TanggalTerima:    timeOrZero(m.TanggalTerima),
		TanggalSetor:     timeOrZero(m.TanggalSetor),
		TanggalValidasi:  timeOrZero(m.TanggalValidasi),
		JenisPembayaran:  m.JenisPembayaran,
		KodeKasir:        m.KodeKasir,
		KeteranganUmum:   m.KeteranganUmum,
		KeteranganKhusus: m.KeteranganKhusus,
	}
}

// OPDModel is the persistence model for an organizational unit.
type OPDModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	KodeOPD    string `gorm:"type:varchar(20);not null;uniqueIndex"`
	NamaOPD    string `gorm:"type:varchar(255);not null"`
	Tahun      int    ``
	KodeQRCode string `gorm:"type:varchar(100)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (OPDModel) TableName() string {
	return "opd"
}

// ToDomain converts the persistence model to a domain OPD.
func (m *OPDModel) ToDomain() sts.OPD {
	return sts.OPD{
		Kode:       m.KodeOPD,
		Nama:       m.NamaOPD,
		Tahun:      m.Tahun,
		KodeQRCode: m.KodeQRCode,
	}
}

// RekeningModel is the persistence model for a revenue account.
type RekeningModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	KodeRekening string `gorm:"type:varchar(50);not null;index"`
	NamaRekening string `gorm:"type:varchar(255)"`
	Tahun        int    ``
	SKT          string `gorm:"column:skt;type:varchar(50)"`
	Level        int    ``
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (RekeningModel) TableName() string {
	return "rekening"
}

// ToDomain converts the persistence model to a domain Rekening.
func (m *RekeningModel) ToDomain() sts.Rekening {
	return sts.Rekening{
		Kode:  m.KodeRekening,
		Nama:  m.NamaRekening,
		Tahun: m.Tahun,
		SKT:   m.SKT,
		Level: m.Level,
	}
}

// BendaharaModel is the persistence model for a receiving treasurer.
type BendaharaModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	IDSibaku  int64  `gorm:"column:id_sibaku;not null;uniqueIndex"`
	Nama      string `gorm:"type:varchar(255);not null"`
	NIP       string `gorm:"column:nip;type:varchar(50)"`
	KodeOPD   string `gorm:"type:varchar(20);index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (BendaharaModel) TableName() string {
	return "bendahara"
}

// ToDomain converts the persistence model to a domain Bendahara.
func (m *BendaharaModel) ToDomain() sts.Bendahara {
	return sts.Bendahara{
		IDSibaku: m.IDSibaku,
		Nama:     m.Nama,
		NIP:      m.NIP,
		KodeOPD:  m.KodeOPD,
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
