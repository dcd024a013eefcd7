package domain

// Currency is a supported currency code
type Currency string

const (
	CurrencyUSD  Currency = "USD"
	CurrencyEUR  Currency = "EUR"
	CurrencyAUD  Currency = "AUD"
	CurrencyCAD  Currency = "CAD"
	CurrencyARS  Currency = "ARS"
	CurrencyPLN  Currency = "PLN"
	CurrencyBTC  Currency = "BTC"
	CurrencyETH  Currency = "ETH"
	CurrencyDOGE Currency = "DOGE"
	CurrencyUSDT Currency = "USDT"
)

// Currencies lists every supported currency. A new user gets one zero
// balance per entry.
var Currencies = []Currency{
	CurrencyUSD,
	CurrencyEUR,
	CurrencyAUD,
	CurrencyCAD,
	CurrencyARS,
	CurrencyPLN,
	CurrencyBTC,
	CurrencyETH,
	CurrencyDOGE,
	CurrencyUSDT,
}

// usdRates are static conversion multipliers used only for read-side
// USD-equivalent aggregation.
var usdRates = map[Currency]float64{
	CurrencyUSD:  1,
	CurrencyEUR:  0.9342,
	CurrencyAUD:  0.5447,
	CurrencyCAD:  0.6162,
	CurrencyARS:  0.0009,
	CurrencyPLN:  0.2343,
	CurrencyBTC:  100000.0,
	CurrencyETH:  3557.3476,
	CurrencyDOGE: 0.3627,
	CurrencyUSDT: 0.9709,
}

// IsValid reports whether c is one of the supported currencies.
func (c Currency) IsValid() bool {
	_, ok := usdRates[c]
	return ok
}

// USDRate returns the static currency→USD multiplier, 1.0 for unknown codes.
func (c Currency) USDRate() float64 {
	if rate, ok := usdRates[c]; ok {
		return rate
	}
	return 1.0
}
