package lendbook

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a short MustParse for test fixtures.
func day(s string) Date { return MustParse(s) }
