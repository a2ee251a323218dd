package service

import (
	"github.com/google/uuid"
	"github.com/schollz/closestmatch"
	"github.com/shopspring/decimal"

	"nfeintake/internal/domain"
	"nfeintake/internal/nfe"
)

// suggestionBagSizes are the n-gram sizes closestmatch indexes names with.
var suggestionBagSizes = []int{3, 4}

// lineMatch is the catalog resolution of one draft line.
type lineMatch struct {
	Status     domain.MatchStatus
	Method     domain.MatchMethod
	ItemID     *uuid.UUID
	Confidence decimal.NullDecimal
	Suggested  *uuid.UUID
}

// catalogMatcher resolves invoice lines against catalog items that were
// fetched once per import. Barcode hits take priority over names; a barcode
// shared by several active items is treated as no hit.
type catalogMatcher struct {
	byBarcode map[string][]domain.CatalogItem
	byName    map[string]uuid.UUID
	suggester *closestmatch.ClosestMatch

	barcodeConfidence decimal.Decimal
	nameConfidence    decimal.Decimal
}

func newCatalogMatcher(barcodeConfidence, nameConfidence decimal.Decimal) *catalogMatcher {
	return &catalogMatcher{
		byBarcode:         map[string][]domain.CatalogItem{},
		byName:            map[string]uuid.UUID{},
		barcodeConfidence: barcodeConfidence,
		nameConfidence:    nameConfidence,
	}
}

func (m *catalogMatcher) addBarcodeHits(items []domain.CatalogItem) {
	for _, it := range items {
		m.byBarcode[it.Barcode] = append(m.byBarcode[it.Barcode], it)
	}
}

// addCandidates indexes normalized names. Candidates arrive ordered by name,
// so the first item wins when two normalize to the same text.
func (m *catalogMatcher) addCandidates(items []domain.CatalogItem, suggest bool) {
	names := make([]string, 0, len(items))
	for _, it := range items {
		key := nfe.NormalizeName(it.Name)
		if key == "" {
			continue
		}
		if _, seen := m.byName[key]; seen {
			continue
		}
		m.byName[key] = it.ID
		names = append(names, key)
	}
	if suggest && len(names) > 0 {
		m.suggester = closestmatch.New(names, suggestionBagSizes)
	}
}

// barcodeHit returns the single active item carrying gtin.
func (m *catalogMatcher) barcodeHit(gtin string) (uuid.UUID, bool) {
	if gtin == "" {
		return uuid.Nil, false
	}
	hits := m.byBarcode[gtin]
	if len(hits) != 1 {
		return uuid.Nil, false
	}
	return hits[0].ID, true
}

func (m *catalogMatcher) resolve(line nfe.DraftLine) lineMatch {
	if id, ok := m.barcodeHit(line.GTIN); ok {
		return lineMatch{
			Status:     domain.MatchStatusMatched,
			Method:     domain.MatchMethodBarcode,
			ItemID:     &id,
			Confidence: decimal.NewNullDecimal(m.barcodeConfidence),
		}
	}

	name := nfe.NormalizeName(line.Description)
	if id, ok := m.byName[name]; ok && name != "" {
		return lineMatch{
			Status:     domain.MatchStatusMatched,
			Method:     domain.MatchMethodName,
			ItemID:     &id,
			Confidence: decimal.NewNullDecimal(m.nameConfidence),
		}
	}

	res := lineMatch{Status: domain.MatchStatusPending, Method: domain.MatchMethodNone}
	if m.suggester != nil && name != "" {
		if closest := m.suggester.Closest(name); closest != "" {
			if id, ok := m.byName[closest]; ok {
				res.Suggested = &id
			}
		}
	}
	return res
}
