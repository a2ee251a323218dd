package nfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfeintake/internal/nfe"
)

func TestSubtotal_DerivedFromGrandTotal(t *testing.T) {
	totals := &nfe.Totals{
		Products:     dec("999"),
		Invoice:      dec("120"),
		Freight:      dec("10"),
		Discount:     dec("5"),
		OtherCharges: dec("0"),
	}

	assert.True(t, dec("115").Equal(nfe.Subtotal(totals)), "120 - 10 - 0 + 5, vProd ignored")
}

func TestToDraft(t *testing.T) {
	inv := nfe.Parse(readFixture(t, "nfeproc.xml"))

	d := nfe.ToDraft(inv)

	assert.Equal(t, fixtureKey, d.AccessKey)
	assert.Equal(t, "12345678000195", d.SupplierTaxID)
	assert.Equal(t, "1234", d.InvoiceNumber)
	assert.Equal(t, "1", d.InvoiceSeries)
	assert.Equal(t, "2024-05-01", d.IssueDate)
	assert.True(t, dec("110").Equal(d.Subtotal))
	assert.True(t, dec("5").Equal(d.Discount))
	assert.True(t, dec("10").Equal(d.Freight))
	assert.True(t, dec("115").Equal(d.Total))

	require.Len(t, d.Lines, 2)
	assert.Equal(t, "Arroz 5kg", d.Lines[0].Description)
	assert.True(t, dec("10.50").Equal(d.Lines[0].UnitCost))
	assert.True(t, dec("21").Equal(d.Lines[0].LineTotal))

	require.Len(t, d.Installments, 2)
	assert.Equal(t, "001", d.Installments[0].Number)
	assert.Empty(t, d.Installments[1].DueDate, "due date fallback is not resolved here")
}

func TestToDraft_DerivesMissingLineTotal(t *testing.T) {
	inv := &nfe.Invoice{Lines: []nfe.Line{{
		Sequence:  1,
		Quantity:  dec("2"),
		UnitPrice: dec("10.50"),
	}}}

	d := nfe.ToDraft(inv)

	require.Len(t, d.Lines, 1)
	assert.True(t, dec("21").Equal(d.Lines[0].LineTotal))
}

func TestToDraft_NoIssuerNoTotals(t *testing.T) {
	d := nfe.ToDraft(&nfe.Invoice{})

	assert.Empty(t, d.SupplierTaxID)
	assert.True(t, d.Subtotal.IsZero())
	assert.True(t, d.Total.IsZero())
	assert.NotNil(t, d.Lines)
	assert.NotNil(t, d.Installments)
}
