package engine

import (
	"errors"

	"shop-analytics/internal/models"
)

// ErrNilSnapshot is returned when Analyze is invoked without a snapshot.
var ErrNilSnapshot = errors.New("engine: nil snapshot")

// Snapshot holds one immutable view of the six source collections.
// Analyze only reads it; nothing here is mutated after the loader (or
// the sample generator) hands it over.
type Snapshot struct {
	Orders       []models.Order
	Items        []models.OrderItem
	Products     []models.Product
	Payments     []models.Payment
	Customers    []models.Customer
	Translations []models.CategoryTranslation
}

// indexes are the per-call lookup maps. Building them once up front
// turns every cross-reference in the aggregates into an O(1) probe
// instead of a linear scan per record.
type indexes struct {
	productByID  map[string]*models.Product
	customerByID map[string]*models.Customer
	translation  map[string]string // category code -> english name
	itemsByOrder map[string][]models.OrderItem
}

func (s *Snapshot) buildIndexes() *indexes {
	ix := &indexes{
		productByID:  make(map[string]*models.Product, len(s.Products)),
		customerByID: make(map[string]*models.Customer, len(s.Customers)),
		translation:  make(map[string]string, len(s.Translations)),
		itemsByOrder: make(map[string][]models.OrderItem, len(s.Orders)),
	}
	for i := range s.Products {
		ix.productByID[s.Products[i].ProductID] = &s.Products[i]
	}
	for i := range s.Customers {
		ix.customerByID[s.Customers[i].CustomerID] = &s.Customers[i]
	}
	for i := range s.Translations {
		ix.translation[s.Translations[i].CategoryName] = s.Translations[i].EnglishName
	}
	for _, it := range s.Items {
		ix.itemsByOrder[it.OrderID] = append(ix.itemsByOrder[it.OrderID], it)
	}
	return ix
}
