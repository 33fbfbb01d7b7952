package finance

import "math"

// FutureValue computes the value of fixed monthly deposits compounding
// monthly at the given annual rate (percent) for the given number of
// years. A zero rate degenerates to plain accumulation.
func FutureValue(monthly float64, years int, annualRatePct float64) float64 {
	months := float64(years * 12)
	monthlyRate := annualRatePct / 100 / 12
	if monthlyRate == 0 {
		return monthly * months
	}
	return monthly * ((math.Pow(1+monthlyRate, months) - 1) / monthlyRate)
}

// YearPoint is one year of a savings projection.
type YearPoint struct {
	Year      int     `json:"year"`
	Deposited float64 `json:"deposited"`
	Interest  float64 `json:"interest"`
	Total     float64 `json:"total"`
}

// YearlySeries breaks the projection down year by year for charting.
func YearlySeries(monthly float64, years int, annualRatePct float64) []YearPoint {
	series := make([]YearPoint, years)
	for y := 1; y <= years; y++ {
		total := FutureValue(monthly, y, annualRatePct)
		deposited := monthly * float64(y*12)
		series[y-1] = YearPoint{
			Year:      y,
			Deposited: deposited,
			Interest:  total - deposited,
			Total:     total,
		}
	}
	return series
}
