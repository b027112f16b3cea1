// Package lexicon holds the keyword knowledge the ingestion pipeline
// leans on: header aliases for canonical fields, direction and payment
// hints, and OCR abbreviation fixes. Defaults are compiled in; a yaml
// file can extend them per deployment.
package lexicon

// Field is one of the pipeline's canonical semantic columns.
type Field string

const (
	FieldDate            Field = "date"
	FieldCashIn          Field = "cashIn"
	FieldCashOut         Field = "cashOut"
	FieldOrders          Field = "orders"
	FieldDescription     Field = "description"
	FieldCategory        Field = "category"
	FieldTransactionCost Field = "transactionCost"
	FieldReferenceCode   Field = "referenceCode"
	FieldPaymentMode     Field = "paymentMode"
	FieldPaymentChannel  Field = "paymentChannel"
	FieldProductName     Field = "productName"
	FieldQuantity        Field = "quantity"
	FieldUnitCost        Field = "unitCost"
	FieldClientName      Field = "clientName"
	FieldSupplierName    Field = "supplierName"
	FieldPhone           Field = "phone"
)

// Fields lists every canonical field in resolution order.
var Fields = []Field{
	FieldDate, FieldCashIn, FieldCashOut, FieldOrders, FieldDescription,
	FieldCategory, FieldTransactionCost, FieldReferenceCode,
	FieldPaymentMode, FieldPaymentChannel, FieldProductName,
	FieldQuantity, FieldUnitCost, FieldClientName, FieldSupplierName,
	FieldPhone,
}

// Lexicon bundles every keyword list the pipeline consults.
type Lexicon struct {
	Aliases map[Field][]string

	InboundKeywords  []string
	OutboundKeywords []string
	InboundHints     []string
	OutboundHints    []string
	MoneyKeywords    []string
	ContextKeywords  []string
	PDFNoiseTokens   []string
	Abbreviations    map[string]string

	ClientContextKeywords   []string
	SupplierContextKeywords []string
	StockKeywords           []string

	ClientPrefixes   []string
	SupplierPrefixes []string
	ProductPrefixes  []string
}

// Default returns the compiled-in lexicon.
func Default() *Lexicon {
	return &Lexicon{
		Aliases: map[Field][]string{
			FieldDate:            {"date", "transaction date", "value date"},
			FieldCashIn:          {"cash in", "cash_in", "amount in", "sales", "revenue", "credit", "received from", "inflow", "received"},
			FieldCashOut:         {"cash out", "cash_out", "amount out", "expense", "expenses", "cost", "debit", "paid to", "outflow", "paid"},
			FieldOrders:          {"orders", "order count", "qty orders", "transactions"},
			FieldDescription:     {"description", "details", "narration", "transaction type", "type", "notes"},
			FieldCategory:        {"category", "expense category", "tag"},
			FieldTransactionCost: {"transaction cost", "charges", "charge", "fee", "cost"},
			FieldReferenceCode:   {"reference code", "reference", "mpesa code", "receipt no", "transaction id", "trans id", "code"},
			FieldPaymentMode:     {"mode of payment", "payment mode", "payment method", "method", "mode"},
			FieldPaymentChannel:  {"payment channel", "channel", "account type", "mpesa type"},
			FieldProductName:     {"product", "item", "product name", "stock item", "goods"},
			FieldQuantity:        {"qty", "quantity", "units", "pieces"},
			FieldUnitCost:        {"unit price", "unit cost", "price", "cost per unit", "buying price"},
			FieldClientName:      {"customer", "client", "buyer", "paid by", "received from"},
			FieldSupplierName:    {"supplier", "vendor", "paid to", "merchant"},
			FieldPhone:           {"phone", "mobile", "msisdn", "contact"},
		},
		OutboundKeywords: []string{"paid", "expense", "cost", "rent", "withdraw", "debit", "send", "purchase", "transport", "airtime", "out"},
		InboundKeywords:  []string{"sale", "sold", "received", "income", "credit", "payment", "in"},
		InboundHints:     []string{"received from", "customer payment", "deposit", "cash sale"},
		OutboundHints:    []string{"paid to", "withdraw", "withdrawal", "airtime", "send money", "supplier", "rent", "utility", "stock purchase", "inventory", "restock"},
		MoneyKeywords:    []string{"kes", "ksh", "mpesa", "m-pesa", "paybill", "pochi", "till", "paid", "received", "sale", "sold", "expense", "credit", "debit", "fee", "charge"},
		ContextKeywords:  []string{"sale", "sold", "paid", "received", "payment", "expense", "cash", "bank", "transfer", "mpesa", "m-pesa", "till", "paybill", "pochi"},
		PDFNoiseTokens: []string{
			"%pdf", "obj", "endobj", "stream", "endstream", "xref", "trailer", "startxref",
			"/font", "/length", "/type", "/id", "/root", "flatedecode", "fontbbox", "italicangle", "capheight",
		},
		Abbreviations: map[string]string{
			"amt":     "amount",
			"amnt":    "amount",
			"pd":      "paid",
			"pd to":   "paid to",
			"rcvd":    "received",
			"rcv":     "received",
			"bal":     "balance",
			"cr":      "credit",
			"dr":      "debit",
			"dep":     "deposit",
			"mpesa":   "m-pesa",
			"m pesa":  "m-pesa",
			"till no": "till",
			"pb":      "paybill",
		},
		ClientContextKeywords:   []string{"received from", "customer", "client", "payment from", "buyer", "received", "payment"},
		SupplierContextKeywords: []string{"supplier", "vendor", "wholesale", "restock", "stock", "paid to"},
		StockKeywords:           []string{"stock", "inventory", "restock"},
		ClientPrefixes:          []string{"received from ", "payment from ", "customer ", "client "},
		SupplierPrefixes:        []string{"paid to ", "supplier ", "vendor ", "merchant "},
		ProductPrefixes:         []string{"product ", "item ", "goods "},
	}
}
