package cpi

import (
	"math/rand"
	"time"
)

// Sample data covers 2019-01 through 2024-10, monthly.
var (
	sampleStart = time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	sampleEnd   = time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
)

// SampleDataset generates the demonstration dataset used when no CSV has
// been uploaded: both CPI series start at 100 (base period 2019=100) and
// drift upward with small bounded noise, the INR/USD rate climbs from 70.
// Records are stamped at the first day of each month, 2024-10 included,
// for 70 records in total. The same seed always produces the same dataset.
func SampleDataset(seed int64) Dataset {
	rng := rand.New(rand.NewSource(seed))

	var ds Dataset
	i := 0
	for d := sampleStart; !d.After(sampleEnd); d = d.AddDate(0, 1, 0) {
		step := float64(i)
		ds = append(ds, Observation{
			Date:         d,
			USCPI:        100 * (1 + 0.002*step + uniform(rng, -0.001, 0.001)),
			IndiaCPI:     100 * (1 + 0.004*step + uniform(rng, -0.002, 0.002)),
			ExchangeRate: 70 + 0.15*step + uniform(rng, -0.5, 0.5),
		})
		i++
	}
	return ds
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
