package resolver

// aliases maps well-known lowercase company shorthands to tickers, so
// "apple" resolves without a name scan.
var aliases = map[string]string{
	"apple":             "AAPL",
	"microsoft":         "MSFT",
	"google":            "GOOGL",
	"alphabet":          "GOOGL",
	"amazon":            "AMZN",
	"meta":              "META",
	"facebook":          "META",
	"tesla":             "TSLA",
	"nvidia":            "NVDA",
	"netflix":           "NFLX",
	"berkshire":         "BRK-B",
	"jpmorgan":          "JPM",
	"jp morgan":         "JPM",
	"walmart":           "WMT",
	"disney":            "DIS",
	"intel":             "INTC",
	"amd":               "AMD",
	"ibm":               "IBM",
	"oracle":            "ORCL",
	"salesforce":        "CRM",
	"adobe":             "ADBE",
	"paypal":            "PYPL",
	"coca cola":         "KO",
	"coke":              "KO",
	"pepsi":             "PEP",
	"mcdonalds":         "MCD",
	"nike":              "NKE",
	"starbucks":         "SBUX",
	"boeing":            "BA",
	"goldman sachs":     "GS",
	"goldman":           "GS",
	"visa":              "V",
	"mastercard":        "MA",
	"exxon":             "XOM",
	"chevron":           "CVX",
	"pfizer":            "PFE",
	"johnson & johnson": "JNJ",
	"broadcom":          "AVGO",
	"qualcomm":          "QCOM",
	"cisco":             "CSCO",
	"uber":              "UBER",
}
