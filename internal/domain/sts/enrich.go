package sts

import (
	"strings"
	"time"
)

// lookupIndex holds the reference tables keyed for joining.
type lookupIndex struct {
	unitsByCode      map[string]OPD
	accountsByCode   map[string]Rekening
	treasurersByCode map[int64]Bendahara
}

func buildIndex(refs ReferenceData) lookupIndex {
	idx := lookupIndex{
		unitsByCode:      make(map[string]OPD, len(refs.Units)),
		accountsByCode:   make(map[string]Rekening, len(refs.Accounts)),
		treasurersByCode: make(map[int64]Bendahara, len(refs.Treasurers)),
	}
	for _, u := range refs.Units {
		if _, exists := idx.unitsByCode[u.Kode]; !exists {
			idx.unitsByCode[u.Kode] = u
		}
	}
	// Account codes collide in the upstream export; first occurrence wins.
	for _, a := range refs.Accounts {
		if _, exists := idx.accountsByCode[a.Kode]; !exists {
			idx.accountsByCode[a.Kode] = a
		}
	}
	for _, b := range refs.Treasurers {
		if _, exists := idx.treasurersByCode[b.IDSibaku]; !exists {
			idx.treasurersByCode[b.IDSibaku] = b
		}
	}
	return idx
}

// Enrich left-joins raw transactions against the reference tables, derives
// calendar and payment-label fields, and removes the excluded unit's own
// deposits. Unresolved joins keep the row with sentinel/empty values.
//
// Records without a receive date keep zero calendar fields; they surface only
// in the unrestricted view, never in a calendar bucket.
func Enrich(txs []Transaction, refs ReferenceData) Dataset {
	idx := buildIndex(refs)
	ds := make(Dataset, 0, len(txs))

	for _, tx := range txs {
		kodeOPD, kodeRek := ParseAyat(tx.Ayat)

		rec := EnrichedRecord{
			KodeBilling:      tx.KodeBilling,
			KodeOPD:          kodeOPD,
			NamaOPD:          UnknownOPDName,
			KodeRekening:     kodeRek,
			Nominal:          tx.Nominal,
			TanggalTerima:    tx.TanggalTerima,
			TanggalSetor:     tx.TanggalSetor,
			TanggalValidasi:  tx.TanggalValidasi,
			JenisPembayaran:  tx.JenisPembayaran,
			NamaPembayaran:   PaymentTypeName(tx.JenisPembayaran),
			KeteranganUmum:   tx.KeteranganUmum,
			KeteranganKhusus: tx.KeteranganKhusus,
		}

		if unit, ok := idx.unitsByCode[kodeOPD]; ok && unit.Nama != "" {
			rec.NamaOPD = unit.Nama
		}
		if acc, ok := idx.accountsByCode[kodeRek]; ok {
			rec.NamaRekening = acc.Nama
		}
		if b, ok := idx.treasurersByCode[tx.KodeKasir]; ok {
			rec.NamaKasir = b.Nama
			rec.NIPKasir = b.NIP
		}

		if !tx.TanggalTerima.IsZero() {
			t := tx.TanggalTerima
			rec.Tanggal = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
			rec.Tahun = t.Year()
			rec.Bulan = int(t.Month())
			rec.NamaBulan = MonthName(rec.Bulan)
			_, rec.MingguTahun = t.ISOWeek()
			rec.Hari = DayName(t.Weekday())
		}

		if strings.Contains(strings.ToLower(rec.NamaOPD), excludedUnitSubstring) {
			continue
		}

		ds = append(ds, rec)
	}

	return ds
}
