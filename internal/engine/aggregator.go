package engine

import (
	"sort"
	"strings"
	"sync"

	"shop-analytics/internal/models"
)

const (
	statusDelivered = "delivered"
	topN            = 10
)

// Analyze derives the full report from one snapshot. The snapshot is
// read-only for the duration of the call; the report aliases nothing
// from it, so callers may keep both around independently.
//
// Business-data problems (dangling foreign keys, empty collections)
// never fail the call: the offending record simply contributes nothing.
// The only error is being invoked without a snapshot at all.
func (s *Snapshot) Analyze() (*models.Report, error) {
	if s == nil {
		return nil, ErrNilSnapshot
	}

	ix := s.buildIndexes()
	report := &models.Report{}

	// Segmentation goes first: the repeat-customer KPI is read off it.
	report.CustomerSegmentation = s.customerSegmentation(ix)

	// The remaining aggregates only share the read-only snapshot and
	// each writes its own report field, so they fan out safely.
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); report.MonthlyRevenue = s.monthlyRevenue(ix) }()
	go func() { defer wg.Done(); report.TopCategories = s.topCategories(ix) }()
	go func() { defer wg.Done(); report.PaymentMethods = s.paymentMethods() }()
	go func() { defer wg.Done(); report.StateRevenue = s.stateRevenue(ix) }()
	wg.Wait()

	report.KPIs = s.kpis(report.CustomerSegmentation)
	return report, nil
}

// monthlyRevenue groups delivered orders by calendar month (YYYY-MM).
// An order's contribution is price+freight over its items; a delivered
// order with no items still opens its month bucket with zero. Months
// with no delivered orders are not zero-filled.
func (s *Snapshot) monthlyRevenue(ix *indexes) []models.MonthRevenue {
	byMonth := make(map[string]float64)
	for _, o := range s.Orders {
		if o.Status != statusDelivered {
			continue
		}
		var rev float64
		for _, it := range ix.itemsByOrder[o.OrderID] {
			rev += it.Price + it.FreightValue
		}
		byMonth[o.PurchaseTimestamp.Format("2006-01")] += rev
	}

	out := make([]models.MonthRevenue, 0, len(byMonth))
	for m, rev := range byMonth {
		out = append(out, models.MonthRevenue{Month: m, Revenue: rev})
	}
	// Fixed-width YYYY-MM keys: lexicographic == chronological.
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// topCategories sums item price (freight excluded) per category display
// name across all items regardless of order status. The display name is
// the English translation when one exists, else the raw category code.
func (s *Snapshot) topCategories(ix *indexes) []models.CategorySales {
	pos := make(map[string]int)
	out := make([]models.CategorySales, 0)

	for _, it := range s.Items {
		p, ok := ix.productByID[it.ProductID]
		if !ok {
			continue // orphan item, nothing to attribute
		}
		name := p.CategoryName
		if en, ok := ix.translation[name]; ok && en != "" {
			name = en
		}
		i, ok := pos[name]
		if !ok {
			i = len(out)
			pos[name] = i
			out = append(out, models.CategorySales{Category: name})
		}
		out[i].Sales += it.Price
	}

	// Stable sort keeps first-encounter order between equal values.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sales > out[j].Sales })
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// customerSegmentation counts orders per person (customer_unique_id,
// not the per-order customer_id) across all statuses. Exactly one order
// makes a person "New", two or more "Repeat". Both buckets are always
// emitted, in that order.
func (s *Snapshot) customerSegmentation(ix *indexes) []models.CustomerSegment {
	ordersPerPerson := make(map[string]int)
	for _, o := range s.Orders {
		c, ok := ix.customerByID[o.CustomerID]
		if !ok {
			continue
		}
		ordersPerPerson[c.CustomerUniqueID]++
	}

	var newCount, repeatCount int
	for _, n := range ordersPerPerson {
		if n == 1 {
			newCount++
		} else {
			repeatCount++
		}
	}
	return []models.CustomerSegment{
		{Type: "New", Count: newCount},
		{Type: "Repeat", Count: repeatCount},
	}
}

// paymentMethods groups every payment record by its normalized label
// (underscores to spaces, upper-cased). Bucket order is first-encounter
// order in the input, not sorted.
func (s *Snapshot) paymentMethods() []models.PaymentMethodStat {
	pos := make(map[string]int)
	out := make([]models.PaymentMethodStat, 0)

	for _, p := range s.Payments {
		label := strings.ToUpper(strings.ReplaceAll(p.Type, "_", " "))
		i, ok := pos[label]
		if !ok {
			i = len(out)
			pos[label] = i
			out = append(out, models.PaymentMethodStat{Method: label})
		}
		out[i].Count++
		out[i].Value += p.Value
	}
	return out
}

// stateRevenue accumulates, per customer state over delivered orders,
// the distinct order count and the summed item price. Freight stays out
// here (same revenue definition as topCategories, unlike monthlyRevenue).
func (s *Snapshot) stateRevenue(ix *indexes) []models.StateRevenue {
	type stateAgg struct {
		orders  map[string]struct{}
		revenue float64
	}
	byState := make(map[string]*stateAgg)

	for _, o := range s.Orders {
		if o.Status != statusDelivered {
			continue
		}
		c, ok := ix.customerByID[o.CustomerID]
		if !ok {
			continue
		}
		agg := byState[c.State]
		if agg == nil {
			agg = &stateAgg{orders: make(map[string]struct{})}
			byState[c.State] = agg
		}
		// Distinct ids: a three-item order still counts as one order.
		agg.orders[o.OrderID] = struct{}{}
		for _, it := range ix.itemsByOrder[o.OrderID] {
			agg.revenue += it.Price
		}
	}

	out := make([]models.StateRevenue, 0, len(byState))
	for state, agg := range byState {
		out = append(out, models.StateRevenue{
			State:   state,
			Orders:  len(agg.orders),
			Revenue: agg.revenue,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].State < out[j].State // deterministic ties
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// kpis recomputes the headline numbers from the raw collections, except
// the repeat rate which derives from the segmentation buckets.
//
// totalRevenue covers items of ALL order statuses while totalOrders is
// delivered-only, so avgOrderValue mixes the two. Downstream dashboards
// depend on these exact numbers; keep the definitions as they are.
func (s *Snapshot) kpis(segments []models.CustomerSegment) models.KPISet {
	var totalRevenue float64
	for _, it := range s.Items {
		totalRevenue += it.Price + it.FreightValue
	}

	var totalOrders int
	for _, o := range s.Orders {
		if o.Status == statusDelivered {
			totalOrders++
		}
	}

	var avgOrderValue float64
	if totalOrders > 0 {
		avgOrderValue = totalRevenue / float64(totalOrders)
	}

	var people, repeat int
	for _, seg := range segments {
		people += seg.Count
		if seg.Type == "Repeat" {
			repeat = seg.Count
		}
	}
	var repeatRate float64
	if people > 0 {
		repeatRate = float64(repeat) / float64(people) * 100
	}

	return models.KPISet{
		TotalRevenue:       totalRevenue,
		TotalOrders:        totalOrders,
		AvgOrderValue:      avgOrderValue,
		RepeatCustomerRate: repeatRate,
	}
}
