package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfeintake/internal/domain"
	"nfeintake/internal/nfe"
)

func newTestMatcher() *catalogMatcher {
	return newCatalogMatcher(decimal.NewFromInt(1), decimal.RequireFromString("0.8"))
}

func TestCatalogMatcher_FirstNameWinsOnCollision(t *testing.T) {
	m := newTestMatcher()
	first := domain.CatalogItem{ID: uuid.New(), Name: "Café Torrado"}
	second := domain.CatalogItem{ID: uuid.New(), Name: "CAFE TORRADO"}
	m.addCandidates([]domain.CatalogItem{first, second}, false)

	res := m.resolve(nfe.DraftLine{Description: "café torrado "})

	require.NotNil(t, res.ItemID)
	assert.Equal(t, first.ID, *res.ItemID)
	assert.Equal(t, domain.MatchMethodName, res.Method)
}

func TestCatalogMatcher_EmptyDescriptionStaysPending(t *testing.T) {
	m := newTestMatcher()
	m.addCandidates([]domain.CatalogItem{{ID: uuid.New(), Name: "   "}}, true)

	res := m.resolve(nfe.DraftLine{Description: ""})

	assert.Equal(t, domain.MatchStatusPending, res.Status)
	assert.Nil(t, res.ItemID)
	assert.Nil(t, res.Suggested)
	assert.False(t, res.Confidence.Valid)
}

func TestCatalogMatcher_SharedBarcodeIsNoHit(t *testing.T) {
	m := newTestMatcher()
	m.addBarcodeHits([]domain.CatalogItem{
		{ID: uuid.New(), Barcode: "789"},
		{ID: uuid.New(), Barcode: "789"},
	})

	_, ok := m.barcodeHit("789")
	assert.False(t, ok)
	_, ok = m.barcodeHit("")
	assert.False(t, ok)
}

func TestCatalogMatcher_SuggestionsDisabled(t *testing.T) {
	m := newTestMatcher()
	m.addCandidates([]domain.CatalogItem{{ID: uuid.New(), Name: "Arroz Branco 5kg"}}, false)

	res := m.resolve(nfe.DraftLine{Description: "Arroz 5kg"})

	assert.Equal(t, domain.MatchStatusPending, res.Status)
	assert.Nil(t, res.Suggested)
}

func TestInstallmentNumber(t *testing.T) {
	assert.Equal(t, 3, installmentNumber("003"))
	assert.Equal(t, 1, installmentNumber(""))
	assert.Equal(t, 1, installmentNumber("0"))
	assert.Equal(t, 1, installmentNumber("1/3"))
}
