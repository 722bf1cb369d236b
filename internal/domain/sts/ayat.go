package sts

// AyatUnitCodeWidth is the fixed width of the organizational-unit prefix in
// an AYAT composite key. The remainder of the string is the account code.
const AyatUnitCodeWidth = 15

// ParseAyat splits an AYAT composite key into its unit code and account
// code by fixed-width slicing. An AYAT shorter than the unit-code width
// yields the whole string as unit code and an empty account code; the join
// then degrades to the unknown-unit sentinel instead of dropping the row.
func ParseAyat(ayat string) (kodeOPD, kodeRekening string) {
	if len(ayat) <= AyatUnitCodeWidth {
		return ayat, ""
	}
	return ayat[:AyatUnitCodeWidth], ayat[AyatUnitCodeWidth:]
}
