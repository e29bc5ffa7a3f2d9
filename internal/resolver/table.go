package resolver

// mapping pairs a canonical ticker symbol with the market it trades on.
type mapping struct {
	Symbol string
	Market Market
}

// symbolTable maps lowercase company names and common aliases to ticker
// symbols. Exact hits here are the highest-priority candidates.
var symbolTable = map[string]mapping{
	// US tech
	"apple":      {"AAPL", MarketGlobal},
	"microsoft":  {"MSFT", MarketGlobal},
	"google":     {"GOOGL", MarketGlobal},
	"alphabet":   {"GOOGL", MarketGlobal},
	"amazon":     {"AMZN", MarketGlobal},
	"tesla":      {"TSLA", MarketGlobal},
	"meta":       {"META", MarketGlobal},
	"facebook":   {"META", MarketGlobal},
	"netflix":    {"NFLX", MarketGlobal},
	"nvidia":     {"NVDA", MarketGlobal},
	"oracle":     {"ORCL", MarketGlobal},
	"salesforce": {"CRM", MarketGlobal},
	"adobe":      {"ADBE", MarketGlobal},
	"paypal":     {"PYPL", MarketGlobal},
	"uber":       {"UBER", MarketGlobal},
	"lyft":       {"LYFT", MarketGlobal},
	"spotify":    {"SPOT", MarketGlobal},
	"zoom":       {"ZM", MarketGlobal},
	"shopify":    {"SHOP", MarketGlobal},
	"airbnb":     {"ABNB", MarketGlobal},
	"palantir":   {"PLTR", MarketGlobal},
	"snowflake":  {"SNOW", MarketGlobal},
	"intel":      {"INTC", MarketGlobal},
	"cisco":      {"CSCO", MarketGlobal},
	"broadcom":   {"AVGO", MarketGlobal},

	// Finance
	"blackrock":        {"BLK", MarketGlobal},
	"jpmorgan":         {"JPM", MarketGlobal},
	"jp morgan":        {"JPM", MarketGlobal},
	"bank of america":  {"BAC", MarketGlobal},
	"goldman sachs":    {"GS", MarketGlobal},
	"morgan stanley":   {"MS", MarketGlobal},
	"visa":             {"V", MarketGlobal},
	"mastercard":       {"MA", MarketGlobal},
	"american express": {"AXP", MarketGlobal},
	"amex":             {"AXP", MarketGlobal},

	// Consumer and retail
	"coca cola":  {"KO", MarketGlobal},
	"coca-cola":  {"KO", MarketGlobal},
	"walmart":    {"WMT", MarketGlobal},
	"disney":     {"DIS", MarketGlobal},
	"mcdonalds":  {"MCD", MarketGlobal},
	"mcdonald's": {"MCD", MarketGlobal},
	"starbucks":  {"SBUX", MarketGlobal},
	"nike":       {"NKE", MarketGlobal},
	"home depot": {"HD", MarketGlobal},
	"costco":     {"COST", MarketGlobal},
	"target":     {"TGT", MarketGlobal},

	// Industrial and energy
	"boeing":           {"BA", MarketGlobal},
	"general electric": {"GE", MarketGlobal},
	"ge":               {"GE", MarketGlobal},
	"3m":               {"MMM", MarketGlobal},
	"caterpillar":      {"CAT", MarketGlobal},
	"general motors":   {"GM", MarketGlobal},
	"gm":               {"GM", MarketGlobal},
	"ford":             {"F", MarketGlobal},
	"ford motor":       {"F", MarketGlobal},
	"exxon":            {"XOM", MarketGlobal},
	"exxon mobil":      {"XOM", MarketGlobal},
	"chevron":          {"CVX", MarketGlobal},
	"harley davidson":  {"HOG", MarketGlobal},
	"harley-davidson":  {"HOG", MarketGlobal},

	// Healthcare and pharma
	"johnson & johnson": {"JNJ", MarketGlobal},
	"pfizer":            {"PFE", MarketGlobal},
	"abbvie":            {"ABBV", MarketGlobal},
	"merck":             {"MRK", MarketGlobal},

	// Berkshire
	"berkshire hathaway": {"BRK.A", MarketGlobal},
	"berkshire":          {"BRK.B", MarketGlobal},

	// Indian stocks (NSE)
	"reliance":      {"RELIANCE", MarketIndia},
	"tcs":           {"TCS", MarketIndia},
	"infosys":       {"INFY", MarketIndia},
	"hdfc":          {"HDFCBANK", MarketIndia},
	"hdfc bank":     {"HDFCBANK", MarketIndia},
	"icici":         {"ICICIBANK", MarketIndia},
	"icici bank":    {"ICICIBANK", MarketIndia},
	"itc":           {"ITC", MarketIndia},
	"bharti":        {"BHARTIARTL", MarketIndia},
	"airtel":        {"BHARTIARTL", MarketIndia},
	"wipro":         {"WIPRO", MarketIndia},
	"maruti":        {"MARUTI", MarketIndia},
	"asian paints":  {"ASIANPAINT", MarketIndia},
	"titan":         {"TITAN", MarketIndia},
	"zomato":        {"ZOMATO", MarketIndia},
	"adani":         {"ADANIENT", MarketIndia},
	"tata motors":   {"TATAMOTORS", MarketIndia},
	"tata steel":    {"TATASTEEL", MarketIndia},
	"tata power":    {"TATAPOWER", MarketIndia},
	"coal india":    {"COALINDIA", MarketIndia},
	"ongc":          {"ONGC", MarketIndia},
	"ntpc":          {"NTPC", MarketIndia},
	"power grid":    {"POWERGRID", MarketIndia},
	"sbi":           {"SBIN", MarketIndia},
	"axis bank":     {"AXISBANK", MarketIndia},
	"kotak":         {"KOTAKBANK", MarketIndia},
	"bajaj finance": {"BAJFINANCE", MarketIndia},
}

// corporateSuffixes are tokens stripped from the end of a company name to
// produce an extra lookup variant ("tata motors" → "tata").
var corporateSuffixes = []string{
	"motors", "motor", "company", "corporation", "corp",
	"incorporated", "inc", "limited", "ltd", "plc",
}
