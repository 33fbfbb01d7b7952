package finance

import "math"

// TRAIN Law (RA 10963) graduated brackets, 2023 onward.
type taxBracket struct {
	min  float64
	rate float64
	base float64
}

var graduatedBrackets = []taxBracket{
	{min: 0, rate: 0, base: 0},
	{min: 250_000, rate: 0.15, base: 0},
	{min: 400_000, rate: 0.20, base: 22_500},
	{min: 800_000, rate: 0.25, base: 102_500},
	{min: 2_000_000, rate: 0.30, base: 402_500},
	{min: 8_000_000, rate: 0.35, base: 2_202_500},
}

const (
	// Optional Standard Deduction for self-employed filers.
	osdRate = 0.40
	// Quarterly percentage tax, restored July 2023.
	percentageTaxRate = 0.03
	// VAT threshold; above it the 8% flat option is unavailable.
	flat8Ceiling = 3_000_000
	flat8Rate    = 0.08
	flat8Exempt  = 250_000
)

// GraduatedIncomeTax computes income tax on taxable income (after
// deductions) under the graduated brackets.
func GraduatedIncomeTax(taxableIncome float64) float64 {
	for i := len(graduatedBrackets) - 1; i >= 0; i-- {
		b := graduatedBrackets[i]
		if taxableIncome > b.min {
			return b.base + (taxableIncome-b.min)*b.rate
		}
	}
	return 0
}

// GraduatedEstimate is the graduated option applied to an annual gross:
// income tax on gross less the 40% OSD, plus 3% percentage tax on the
// full gross.
type GraduatedEstimate struct {
	TaxableIncome float64 `json:"taxableIncome"`
	IncomeTax     float64 `json:"incomeTax"`
	PercentageTax float64 `json:"percentageTax"`
	Total         float64 `json:"total"`
}

func GraduatedTotal(gross float64) GraduatedEstimate {
	taxable := gross * (1 - osdRate)
	incomeTax := GraduatedIncomeTax(taxable)
	percentageTax := gross * percentageTaxRate
	return GraduatedEstimate{
		TaxableIncome: taxable,
		IncomeTax:     incomeTax,
		PercentageTax: percentageTax,
		Total:         incomeTax + percentageTax,
	}
}

// Flat8 is the 8% flat option: 8% of gross beyond the first ₱250K,
// replacing both the graduated income tax and the percentage tax. Returns
// +Inf above the ₱3M VAT threshold, where the option is not available.
func Flat8(gross float64) float64 {
	if gross > flat8Ceiling {
		return math.Inf(1)
	}
	return math.Max(0, (gross-flat8Exempt)*flat8Rate)
}

// TaxComparison puts both filing options side by side for an annual gross.
type TaxComparison struct {
	AnnualGross   float64           `json:"annualGross"`
	Flat8Eligible bool              `json:"flat8Eligible"`
	Flat8Tax      float64           `json:"flat8Tax"`
	Graduated     GraduatedEstimate `json:"graduated"`
	Recommended   string            `json:"recommended"`
}

// CompareTaxOptions recommends whichever option owes less; ties go to the
// simpler 8% flat filing.
func CompareTaxOptions(gross float64) TaxComparison {
	flat := Flat8(gross)
	graduated := GraduatedTotal(gross)
	eligible := gross <= flat8Ceiling

	recommended := "graduated"
	if eligible && flat <= graduated.Total {
		recommended = "flat8"
	}

	comparison := TaxComparison{
		AnnualGross:   gross,
		Flat8Eligible: eligible,
		Graduated:     graduated,
		Recommended:   recommended,
	}
	if eligible {
		comparison.Flat8Tax = flat
	}
	return comparison
}
