package engine

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"shop-analytics/internal/models"
)

// Demo dimensions, mirroring the Brazilian marketplace dataset the
// dashboard was originally built against.
var (
	sampleStates = []string{"SP", "RJ", "MG", "RS", "PR", "SC", "BA", "GO", "PE", "CE"}

	sampleCategories = []string{
		"electronics", "fashion", "health_beauty", "home_garden",
		"sports_leisure", "books", "toys", "automotive", "food",
	}

	samplePaymentTypes = []string{"credit_card", "boleto", "voucher", "debit_card"}
)

// GenerateSample builds a fully cross-referenced demo snapshot with
// roughly the given number of orders. The same seed yields the same
// snapshot (uuid identifiers aside), which keeps demo runs comparable.
func GenerateSample(orders int, seed int64) *Snapshot {
	if orders < 1 {
		orders = 1
	}
	rng := rand.New(rand.NewSource(seed))
	snap := &Snapshot{}

	// Customers. Every tenth account belongs to the same person as the
	// previous one, so the segmentation view has a Repeat bucket to show.
	numCustomers := orders / 5
	if numCustomers < 1 {
		numCustomers = 1
	}
	for i := 0; i < numCustomers; i++ {
		uniqueID := uuid.NewString()
		if i%10 == 9 && i > 0 {
			uniqueID = snap.Customers[i-1].CustomerUniqueID
		}
		snap.Customers = append(snap.Customers, models.Customer{
			CustomerID:       uuid.NewString(),
			CustomerUniqueID: uniqueID,
			State:            sampleStates[rng.Intn(len(sampleStates))],
		})
	}

	// Products spread over the fixed category list.
	numProducts := orders / 10
	if numProducts < 1 {
		numProducts = 1
	}
	for i := 0; i < numProducts; i++ {
		snap.Products = append(snap.Products, models.Product{
			ProductID:    uuid.NewString(),
			CategoryName: sampleCategories[rng.Intn(len(sampleCategories))],
		})
	}

	for _, cat := range sampleCategories {
		snap.Translations = append(snap.Translations, models.CategoryTranslation{
			CategoryName: cat,
			EnglishName:  strings.ToUpper(strings.ReplaceAll(cat, "_", " ")),
		})
	}

	// Orders with 1..3 items each and one payment record per item.
	for i := 0; i < orders; i++ {
		orderID := uuid.NewString()
		customer := snap.Customers[rng.Intn(len(snap.Customers))]
		purchased := time.Date(2023, time.Month(rng.Intn(12)+1), rng.Intn(28)+1,
			rng.Intn(24), rng.Intn(60), 0, 0, time.UTC)

		status := statusDelivered
		switch rng.Intn(10) {
		case 0:
			status = "shipped"
		case 1:
			status = "canceled"
		}

		snap.Orders = append(snap.Orders, models.Order{
			OrderID:           orderID,
			CustomerID:        customer.CustomerID,
			Status:            status,
			PurchaseTimestamp: purchased,
		})

		itemCount := rng.Intn(3) + 1
		for j := 0; j < itemCount; j++ {
			price := float64(rng.Intn(500) + 10)
			freight := float64(rng.Intn(50) + 5)
			snap.Items = append(snap.Items, models.OrderItem{
				OrderID:      orderID,
				OrderItemID:  j + 1,
				ProductID:    snap.Products[rng.Intn(len(snap.Products))].ProductID,
				Price:        price,
				FreightValue: freight,
			})
			snap.Payments = append(snap.Payments, models.Payment{
				OrderID:      orderID,
				Sequential:   j + 1,
				Type:         samplePaymentTypes[rng.Intn(len(samplePaymentTypes))],
				Installments: rng.Intn(12) + 1,
				Value:        price + freight,
			})
		}
	}

	return snap
}
