package cpi

// Derive enriches a filtered dataset with every computed column the views
// consume: YoY inflation, base-100 normalization of all three series, and
// the PPP-implied rate with its deviation. The whole table is recomputed
// from scratch on every call; nothing is cached or mutated incrementally.
func Derive(ds Dataset) (DerivedTable, error) {
	if len(ds) == 0 {
		return nil, &EmptyRangeError{}
	}

	dates := ds.Dates()
	us := ds.USCPISeries()
	india := ds.IndiaCPISeries()
	fx := ds.ExchangeRateSeries()

	usYoY, err := YearOverYear(us, YoYPeriod, ColumnUSCPI, dates)
	if err != nil {
		return nil, err
	}
	indiaYoY, err := YearOverYear(india, YoYPeriod, ColumnIndiaCPI, dates)
	if err != nil {
		return nil, err
	}

	usNorm, err := Normalize(us, ColumnUSCPI, dates)
	if err != nil {
		return nil, err
	}
	indiaNorm, err := Normalize(india, ColumnIndiaCPI, dates)
	if err != nil {
		return nil, err
	}
	fxNorm, err := Normalize(fx, ColumnExchangeRate, dates)
	if err != nil {
		return nil, err
	}

	implied, err := PPPImplied(india, us, fx, dates)
	if err != nil {
		return nil, err
	}
	deviation, err := PPPDeviation(fx, implied, dates)
	if err != nil {
		return nil, err
	}

	table := make(DerivedTable, len(ds))
	for i, o := range ds {
		table[i] = DerivedRow{
			Observation:            o,
			USInflationYoY:         usYoY[i],
			IndiaInflationYoY:      indiaYoY[i],
			USCPINormalized:        usNorm[i],
			IndiaCPINormalized:     indiaNorm[i],
			ExchangeRateNormalized: fxNorm[i],
			PPPImplied:             implied[i],
			PPPDeviation:           deviation[i],
		}
	}
	return table, nil
}
