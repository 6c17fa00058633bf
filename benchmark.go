package lendbook

import (
	"fmt"
	"math"

	"github.com/PaesslerAG/jsonpath"
)

// BenchmarkRate fetches the latest central-bank main refinancing rate, in
// percent, from the ECB data portal. It gives the lender a reference point
// to read a loan's rate against; the book itself never depends on it.
func BenchmarkRate() (Percent, error) {
	addr := "https://data-api.ecb.europa.eu/service/data/FM/B.U2.EUR.4F.KR.MRR_FR.LEV?format=jsondata&lastNObservations=1"
	var jobj any
	// the daily cache is plenty: the rate changes a few times a year.
	err := jwget(daily(), addr, &jobj)
	if err != nil {
		return Percent(math.NaN()), fmt.Errorf("error in wget %q: %w", "MRR", err)
	}
	path := "$.dataSets[0].series.*.observations.*[0]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Percent(math.NaN()), fmt.Errorf("error parsing %q: %q %w", "MRR", path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return Percent(math.NaN()), fmt.Errorf("error parsing %q: %q %s %v", "MRR", path, "not a float", jval)
	}
	return Percent(val), nil
}
