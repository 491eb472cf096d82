package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSample_FullyCrossReferenced(t *testing.T) {
	snap := GenerateSample(200, 1)

	require.Len(t, snap.Orders, 200)
	require.NotEmpty(t, snap.Customers)
	require.NotEmpty(t, snap.Products)
	require.Len(t, snap.Payments, len(snap.Items))

	customers := make(map[string]bool, len(snap.Customers))
	for _, c := range snap.Customers {
		customers[c.CustomerID] = true
	}
	products := make(map[string]bool, len(snap.Products))
	for _, p := range snap.Products {
		products[p.ProductID] = true
	}
	orders := make(map[string]bool, len(snap.Orders))
	for _, o := range snap.Orders {
		orders[o.OrderID] = true
		assert.True(t, customers[o.CustomerID], "order %s references unknown customer", o.OrderID)
	}
	for _, it := range snap.Items {
		assert.True(t, orders[it.OrderID])
		assert.True(t, products[it.ProductID])
		assert.GreaterOrEqual(t, it.Price, 0.0)
		assert.GreaterOrEqual(t, it.FreightValue, 0.0)
	}
	for _, p := range snap.Payments {
		assert.True(t, orders[p.OrderID])
	}
}

func TestGenerateSample_AnalyzesCleanly(t *testing.T) {
	report, err := GenerateSample(1000, 2).Analyze()
	require.NoError(t, err)

	assert.NotEmpty(t, report.MonthlyRevenue)
	assert.NotEmpty(t, report.TopCategories)
	assert.NotEmpty(t, report.PaymentMethods)
	assert.NotEmpty(t, report.StateRevenue)
	assert.Positive(t, report.KPIs.TotalRevenue)
	assert.Positive(t, report.KPIs.TotalOrders)
	// The shared-person accounts guarantee a non-empty Repeat bucket.
	assert.Positive(t, report.CustomerSegmentation[1].Count)
}

func TestGenerateSample_MinimumOneOrder(t *testing.T) {
	snap := GenerateSample(0, 3)
	require.Len(t, snap.Orders, 1)
}
