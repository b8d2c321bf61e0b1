package domain

import "encoding/json"

// LenientValue is a numeric-ish field that historical persisted blobs carry
// either as a JSON string or as a JSON number. It decodes both into the
// textual form; numeric interpretation happens later via parse-or-zero.
type LenientValue string

func (v *LenientValue) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = LenientValue(s)
		return nil
	}
	if string(b) == "null" {
		*v = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = LenientValue(n.String())
	return nil
}

func (v LenientValue) String() string {
	return string(v)
}

// ExchangeRecord is one logged currency conversion. The JSON keys match the
// blobs written by earlier releases, so a store populated before this version
// still loads; userId in particular used to be a bare Date.now() number.
type ExchangeRecord struct {
	RecordID     LenientValue `json:"userId"`
	Name         string       `json:"name"`
	FromCurrency string       `json:"fromCurrency"`
	ToCurrency   string       `json:"toCurrency"`
	RealAmount   LenientValue `json:"realAmount"`
	Rate         LenientValue `json:"rate"`
	Amount       LenientValue `json:"amount"`
	Date         string       `json:"date"`
}

// CurrencyPair is a distinct (source, target) combination derived from the
// record collection. It is never persisted.
type CurrencyPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}
