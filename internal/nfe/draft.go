package nfe

import "github.com/shopspring/decimal"

// Draft is the receiving-shaped projection of an Invoice. It carries no
// identifiers from storage; resolving the supplier and catalog items is left
// to the caller.
type Draft struct {
	AccessKey     string          `json:"access_key,omitempty"`
	SupplierTaxID string          `json:"supplier_tax_id,omitempty"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceSeries string          `json:"invoice_series"`
	IssueDate     string          `json:"issue_date,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Freight       decimal.Decimal `json:"freight"`
	Insurance     decimal.Decimal `json:"insurance"`
	OtherCharges  decimal.Decimal `json:"other_charges"`
	Total         decimal.Decimal `json:"total"`
	Lines         []DraftLine     `json:"lines"`
	Installments  []Installment   `json:"installments"`
	Notes         string          `json:"notes,omitempty"`
}

// DraftLine is one line of a Draft.
type DraftLine struct {
	Sequence     int             `json:"sequence"`
	SupplierCode string          `json:"supplier_code"`
	Description  string          `json:"description"`
	NCM          string          `json:"ncm,omitempty"`
	CFOP         string          `json:"cfop,omitempty"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LineTotal    decimal.Decimal `json:"line_total"`
	GTIN         string          `json:"gtin,omitempty"`
}

// ToDraft projects inv without any I/O.
//
// The subtotal is reconstructed as total - freight - other charges + discount
// instead of being copied from the products total, so that drafts stay
// comparable whatever the emitter put in vProd.
func ToDraft(inv *Invoice) Draft {
	d := Draft{
		AccessKey:     inv.AccessKey,
		InvoiceNumber: inv.Number,
		InvoiceSeries: inv.Series,
		IssueDate:     inv.IssueDate,
		Lines:         make([]DraftLine, 0, len(inv.Lines)),
		Installments:  append([]Installment{}, inv.Installments...),
		Notes:         inv.Notes,
	}
	if inv.Issuer != nil {
		d.SupplierTaxID = inv.Issuer.TaxID
	}
	if t := inv.Totals; t != nil {
		d.Discount = t.Discount
		d.Freight = t.Freight
		d.Insurance = t.Insurance
		d.OtherCharges = t.OtherCharges
		d.Total = t.Invoice
		d.Subtotal = Subtotal(t)
	}
	for _, l := range inv.Lines {
		d.Lines = append(d.Lines, DraftLine{
			Sequence:     l.Sequence,
			SupplierCode: l.SupplierCode,
			Description:  l.Description,
			NCM:          l.NCM,
			CFOP:         l.CFOP,
			Unit:         l.Unit,
			Quantity:     l.Quantity,
			UnitCost:     l.UnitPrice,
			LineTotal:    lineTotal(l),
			GTIN:         l.GTIN,
		})
	}
	return d
}

// Subtotal returns the merchandise-only amount derived from the grand total.
func Subtotal(t *Totals) decimal.Decimal {
	return t.Invoice.Sub(t.Freight).Sub(t.OtherCharges).Add(t.Discount)
}

// lineTotal keeps the document's vProd and only derives it when the emitter
// left it empty.
func lineTotal(l Line) decimal.Decimal {
	if !l.LineTotal.IsZero() {
		return l.LineTotal
	}
	return l.Quantity.Mul(l.UnitPrice).Round(2)
}
