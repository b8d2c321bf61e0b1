package dto

// RatesResponse returns the conversion mapping for a base currency plus the
// sorted code list used to populate the form's selection inputs.
type RatesResponse struct {
	Base            string             `json:"base"`
	ConversionRates map[string]float64 `json:"conversionRates"`
	Currencies      []string           `json:"currencies"`
}
