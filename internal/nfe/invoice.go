// Package nfe reads Brazilian electronic invoice (NF-e) documents into a
// structured Invoice and projects them into the shape of a receiving draft.
package nfe

import "github.com/shopspring/decimal"

// Invoice is the structured form of one NF-e document. Absent optional data is
// never an error: the corresponding field stays empty or nil and a message is
// appended to Warnings.
type Invoice struct {
	AccessKey       string        `json:"access_key,omitempty"`
	Number          string        `json:"number"`
	Series          string        `json:"series"`
	IssueDate       string        `json:"issue_date,omitempty"`
	OperationNature string        `json:"operation_nature"`
	Issuer          *Issuer       `json:"issuer,omitempty"`
	Recipient       *Recipient    `json:"recipient,omitempty"`
	Lines           []Line        `json:"lines"`
	Totals          *Totals       `json:"totals,omitempty"`
	Installments    []Installment `json:"installments"`
	Notes           string        `json:"notes,omitempty"`
	Warnings        []string      `json:"warnings"`
}

// Issuer is the supplier that issued the invoice.
type Issuer struct {
	TaxID             string `json:"tax_id"`
	LegalName         string `json:"legal_name"`
	TradeName         string `json:"trade_name,omitempty"`
	StateRegistration string `json:"state_registration,omitempty"`
	State             string `json:"state,omitempty"`
	Municipality      string `json:"municipality,omitempty"`
}

// Recipient is the entity billed by the invoice. At least one of TaxID
// (business) or PersonalTaxID (individual) is set.
type Recipient struct {
	TaxID         string `json:"tax_id,omitempty"`
	PersonalTaxID string `json:"personal_tax_id,omitempty"`
	LegalName     string `json:"legal_name"`
	State         string `json:"state,omitempty"`
}

// Line is one purchased item. Sequence is the 1-based position in document order.
type Line struct {
	Sequence     int             `json:"sequence"`
	SupplierCode string          `json:"supplier_code"`
	Description  string          `json:"description"`
	NCM          string          `json:"ncm,omitempty"`
	CFOP         string          `json:"cfop,omitempty"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	GTIN         string          `json:"gtin,omitempty"`
}

// Installment is one duplicate of the billing section. Number is kept as text.
type Installment struct {
	Number  string          `json:"number"`
	DueDate string          `json:"due_date,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
}

// Totals mirrors the ICMSTot group.
type Totals struct {
	Products     decimal.Decimal `json:"products"`
	Discount     decimal.Decimal `json:"discount"`
	Freight      decimal.Decimal `json:"freight"`
	Insurance    decimal.Decimal `json:"insurance"`
	OtherCharges decimal.Decimal `json:"other_charges"`
	ICMS         decimal.Decimal `json:"icms"`
	ICMSST       decimal.Decimal `json:"icms_st"`
	IPI          decimal.Decimal `json:"ipi"`
	Invoice      decimal.Decimal `json:"invoice"`
}

// Unreadable reports whether the document failed to yield an access key and
// also produced at least one structural warning. A missing access key alone
// does not make a document unreadable, and neither does a recipient without
// a Brazilian tax id since the recipient is optional.
func (inv *Invoice) Unreadable() bool {
	if inv.AccessKey != "" {
		return false
	}
	for _, w := range inv.Warnings {
		switch w {
		case WarnMissingAccessKey, WarnRecipientNoID:
		default:
			return true
		}
	}
	return false
}

func (inv *Invoice) warn(msg string) {
	inv.Warnings = append(inv.Warnings, msg)
}
