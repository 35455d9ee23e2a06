package domain

type DocumentType string

const (
	DocumentNationalID DocumentType = "national_id"
	DocumentForeignID  DocumentType = "foreign_id"
)

type InvoiceType string

const (
	InvoiceReceipt InvoiceType = "receipt"
	InvoiceInvoice InvoiceType = "invoice"
)

type InvoiceDetail string

const (
	InvoiceSimple   InvoiceDetail = "simple"
	InvoiceDetailed InvoiceDetail = "detailed"
)

// BuyerForm holds the buyer-identity fields collected at checkout. It lives
// only for the duration of one checkout attempt and is never persisted.
type BuyerForm struct {
	Email          string
	DocumentType   DocumentType
	DocumentNumber string
	FirstNames     string
	LastNames      string
	Phone          string
	RecipientName  string
	InvoiceType    InvoiceType
	InvoiceDetail  InvoiceDetail
}

// PaymentMethod derives the payment-method label sent to the order backend
// from the chosen invoice type.
func (f BuyerForm) PaymentMethod() string {
	if f.InvoiceType == InvoiceReceipt {
		return "cash"
	}
	return "card"
}
