package persistence

import (
	"context"
	"fmt"

	"github.com/bapenda-jatim/sts-monitoring/internal/domain/shared"
	"github.com/bapenda-jatim/sts-monitoring/internal/domain/sts"
	"github.com/bapenda-jatim/sts-monitoring/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSourceRepository reads deposit receipts and reference data from the
// STS database. It implements sts.SourceRepository.
type GormSourceRepository struct {
	db *gorm.DB
}

// NewGormSourceRepository creates a new GormSourceRepository
func NewGormSourceRepository(db *gorm.DB) *GormSourceRepository {
	return &GormSourceRepository{db: db}
}

// FetchTransactions returns every deposit receipt in the source
func (r *GormSourceRepository) FetchTransactions(ctx context.Context) ([]sts.Transaction, error) {
	var rows []models.TransaksiModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, sourceErr("transaksi", err)
	}

	out := make([]sts.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FetchUnits returns every organizational unit
func (r *GormSourceRepository) FetchUnits(ctx context.Context) ([]sts.OPD, error) {
	var rows []models.OPDModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, sourceErr("opd", err)
	}

	out := make([]sts.OPD, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FetchAccounts returns every revenue account
func (r *GormSourceRepository) FetchAccounts(ctx context.Context) ([]sts.Rekening, error) {
	var rows []models.RekeningModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, sourceErr("rekening", err)
	}

	out := make([]sts.Rekening, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FetchTreasurers returns every receiving treasurer
func (r *GormSourceRepository) FetchTreasurers(ctx context.Context) ([]sts.Bendahara, error) {
	var rows []models.BendaharaModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, sourceErr("bendahara", err)
	}

	out := make([]sts.Bendahara, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

func sourceErr(table string, err error) error {
	return fmt.Errorf("%w: reading %s: %v", shared.ErrDataUnavailable, table, err)
}
