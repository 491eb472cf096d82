package models

import "time"

// --- Input records (one struct per source dataset) ---

type Order struct {
	OrderID           string    `json:"order_id"`
	CustomerID        string    `json:"customer_id"`
	Status            string    `json:"order_status"`
	PurchaseTimestamp time.Time `json:"order_purchase_timestamp"`
}

type OrderItem struct {
	OrderID      string  `json:"order_id"`
	OrderItemID  int     `json:"order_item_id"`
	ProductID    string  `json:"product_id"`
	Price        float64 `json:"price"`
	FreightValue float64 `json:"freight_value"`
}

type Product struct {
	ProductID    string `json:"product_id"`
	CategoryName string `json:"product_category_name"`
}

type Payment struct {
	OrderID      string  `json:"order_id"`
	Sequential   int     `json:"payment_sequential"`
	Type         string  `json:"payment_type"`
	Installments int     `json:"payment_installments"`
	Value        float64 `json:"payment_value"`
}

type Customer struct {
	CustomerID       string `json:"customer_id"`
	CustomerUniqueID string `json:"customer_unique_id"`
	State            string `json:"customer_state"`
}

type CategoryTranslation struct {
	CategoryName string `json:"product_category_name"`
	EnglishName  string `json:"product_category_name_english"`
}

// --- Report (output) types ---

// Report is what the API serves. Orderings are final: handlers and
// frontends must not re-sort.
type Report struct {
	MonthlyRevenue       []MonthRevenue      `json:"monthly_revenue"`
	TopCategories        []CategorySales     `json:"top_categories"`
	CustomerSegmentation []CustomerSegment   `json:"customer_segmentation"`
	PaymentMethods       []PaymentMethodStat `json:"payment_methods"`
	StateRevenue         []StateRevenue      `json:"state_revenue"`
	KPIs                 KPISet              `json:"kpis"`
}

type MonthRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

type CategorySales struct {
	Category string  `json:"category"`
	Sales    float64 `json:"sales"`
}

type CustomerSegment struct {
	Type  string `json:"type"` // "New" or "Repeat"
	Count int    `json:"count"`
}

type PaymentMethodStat struct {
	Method string  `json:"method"`
	Count  int     `json:"count"`
	Value  float64 `json:"value"`
}

type StateRevenue struct {
	State   string  `json:"state"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type KPISet struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalOrders        int     `json:"totalOrders"`
	AvgOrderValue      float64 `json:"avgOrderValue"`
	RepeatCustomerRate float64 `json:"repeatCustomerRate"`
}
