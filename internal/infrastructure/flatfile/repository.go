package flatfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bapenda-jatim/sts-monitoring/internal/domain/shared"
	"github.com/bapenda-jatim/sts-monitoring/internal/domain/sts"
	"github.com/shopspring/decimal"
)

// File names expected inside the export directory.
const (
	TransactionsFile = "transaksi.csv"
	UnitsFile        = "opd.csv"
	AccountsFile     = "rekening.csv"
	TreasurersFile   = "bendahara.csv"
)

// Repository reads deposit receipts and reference data from CSV exports.
// It implements sts.SourceRepository for deployments without direct access
// to the STS database.
type Repository struct {
	dir string
}

// NewRepository creates a Repository reading from dir
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// FetchTransactions reads the deposit receipt export.
// Amounts that fail to parse become zero; the row is kept.
func (r *Repository) FetchTransactions(ctx context.Context) ([]sts.Transaction, error) {
	var out []sts.Transaction
	err := r.readTable(ctx, TransactionsFile, func(row *row) {
		nominal, err := decimal.NewFromString(row.get("RPPOKOK"))
		if err != nil {
			nominal = decimal.Zero
		}
		out = append(out, sts.Transaction{
			KodeBilling:      row.get("KDBILL"),
			Ayat:             row.get("AYAT"),
			Nominal:          nominal,
			TanggalTerima:    row.getTime("TGTERIMA"),
			TanggalSetor:     row.getTime("TGSETOR"),
			TanggalValidasi:  row.getTime("TGVALIDBANK"),
			JenisPembayaran:  row.getInt("KDTUNAI"),
			KodeKasir:        row.getInt64("KDKASIR"),
			KeteranganUmum:   row.get("KETUM"),
			KeteranganKhusus: row.get("KETUS"),
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchUnits reads the organizational unit export
func (r *Repository) FetchUnits(ctx context.Context) ([]sts.OPD, error) {
	var out []sts.OPD
	err := r.readTable(ctx, UnitsFile, func(row *row) {
		out = append(out, sts.OPD{
			Kode:       row.get("KODE_OPD"),
			Nama:       row.get("NAMA_OPD"),
			Tahun:      row.getInt("TAHUN"),
			KodeQRCode: row.get("KODE_QRCODE"),
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchAccounts reads the revenue account export. The hierarchy level is
// derived from the code length.
func (r *Repository) FetchAccounts(ctx context.Context) ([]sts.Rekening, error) {
	var out []sts.Rekening
	err := r.readTable(ctx, AccountsFile, func(row *row) {
		kode := row.get("KODE")
		out = append(out, sts.Rekening{
			Kode:  kode,
			Nama:  row.get("NAMA_REK"),
			Tahun: row.getInt("TAHUN"),
			SKT:   row.get("SKT"),
			Level: sts.RekeningLevel(kode),
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchTreasurers reads the receiving treasurer export
func (r *Repository) FetchTreasurers(ctx context.Context) ([]sts.Bendahara, error) {
	var out []sts.Bendahara
	err := r.readTable(ctx, TreasurersFile, func(row *row) {
		out = append(out, sts.Bendahara{
			IDSibaku: row.getInt64("IDSIBAKU"),
			Nama:     row.get("NAMA"),
			NIP:      row.get("NIP"),
			KodeOPD:  row.get("KODE_OPD"),
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) readTable(ctx context.Context, name string, visit func(*row)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(r.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", shared.ErrDataUnavailable, name, err)
	}
	defer f.Close()

	table, err := newTableReader(f)
	if err != nil {
		return fmt.Errorf("%w: parsing %s: %v", shared.ErrDataUnavailable, name, err)
	}

	for {
		row, err := table.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: parsing %s: %v", shared.ErrDataUnavailable, name, err)
		}
		visit(row)
	}
}
