package nfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nfeintake/internal/nfe"
)

func TestScalar(t *testing.T) {
	markup := `<ide><nNF> 1234 </nNF><serie>1</serie></ide>`

	v, ok := nfe.Scalar(markup, "nNF")
	assert.True(t, ok)
	assert.Equal(t, "1234", v)

	_, ok = nfe.Scalar(markup, "dhEmi")
	assert.False(t, ok)
}

func TestScalar_IgnoresAttributesAndCase(t *testing.T) {
	v, ok := nfe.Scalar(`<DET nItem="1"><CPROD>X1</CPROD></DET>`, "cProd")
	assert.True(t, ok)
	assert.Equal(t, "X1", v)
}

func TestScalar_SkipsSelfClosingAndEmpty(t *testing.T) {
	_, ok := nfe.Scalar(`<cEAN/>`, "cEAN")
	assert.False(t, ok)

	_, ok = nfe.Scalar(`<cEAN>   </cEAN>`, "cEAN")
	assert.False(t, ok)

	v, ok := nfe.Scalar(`<cEAN /><cEAN>789</cEAN>`, "cEAN")
	assert.True(t, ok)
	assert.Equal(t, "789", v)
}

func TestScalar_DoesNotMatchLongerTagNames(t *testing.T) {
	_, ok := nfe.Scalar(`<vProdTotal>9</vProdTotal>`, "vProd")
	assert.False(t, ok)
}

func TestBlock_ReturnsRawInnerMarkup(t *testing.T) {
	inner, ok := nfe.Block(`<emit><CNPJ>1</CNPJ><enderEmit><UF>SP</UF></enderEmit></emit>`, "emit")
	assert.True(t, ok)
	assert.Equal(t, `<CNPJ>1</CNPJ><enderEmit><UF>SP</UF></enderEmit>`, inner)
}

func TestBlock_UnclosedElement(t *testing.T) {
	_, ok := nfe.Block(`<total><ICMSTot><vNF>1</vNF>`, "total")
	assert.False(t, ok)
}

func TestAllBlocks_DocumentOrder(t *testing.T) {
	markup := `<cobr><dup><nDup>1</nDup></dup><dup><nDup>2</nDup></dup><dup/></cobr>`

	blocks := nfe.AllBlocks(markup, "dup")
	assert.Equal(t, []string{
		`<dup><nDup>1</nDup></dup>`,
		`<dup><nDup>2</nDup></dup>`,
	}, blocks)
}

func TestAllBlocks_NoMatches(t *testing.T) {
	assert.Empty(t, nfe.AllBlocks(`<<<garbage`, "det"))
	assert.Empty(t, nfe.AllBlocks("", "det"))
}
