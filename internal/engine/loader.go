package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"shop-analytics/internal/models"
)

// Source file names expected inside the data directory.
const (
	OrdersFile       = "orders.csv"
	ItemsFile        = "order_items.csv"
	ProductsFile     = "products.csv"
	PaymentsFile     = "payments.csv"
	CustomersFile    = "customers.csv"
	TranslationsFile = "category_translations.csv"
)

// Accepted purchase-timestamp layouts, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// LoadDir reads the six source files from dir into a fresh Snapshot.
// Columns are matched by header name, so extra columns and column order
// don't matter. Rows that fail to parse are dropped and counted; only
// structural problems (missing file, missing required column) fail the
// whole load.
func LoadDir(dir string, log *zap.Logger) (*Snapshot, error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()
	snap := &Snapshot{}
	skipped := 0

	n, err := readCSV(filepath.Join(dir, OrdersFile),
		[]string{"order_id", "customer_id", "order_status", "order_purchase_timestamp"},
		func(r row) error {
			ts, err := r.ts("order_purchase_timestamp")
			if err != nil {
				return err
			}
			snap.Orders = append(snap.Orders, models.Order{
				OrderID:           r.str("order_id"),
				CustomerID:        r.str("customer_id"),
				Status:            r.str("order_status"),
				PurchaseTimestamp: ts,
			})
			return nil
		})
	if err != nil {
		return nil, err
	}
	skipped += n

	n, err = readCSV(filepath.Join(dir, ItemsFile),
		[]string{"order_id", "product_id", "price", "freight_value"},
		func(r row) error {
			price, err := r.float("price")
			if err != nil {
				return err
			}
			freight, err := r.float("freight_value")
			if err != nil {
				return err
			}
			seq, _ := r.int("order_item_id")
			snap.Items = append(snap.Items, models.OrderItem{
				OrderID:      r.str("order_id"),
				OrderItemID:  seq,
				ProductID:    r.str("product_id"),
				Price:        price,
				FreightValue: freight,
			})
			return nil
		})
	if err != nil {
		return nil, err
	}
	skipped += n

	n, err = readCSV(filepath.Join(dir, ProductsFile),
		[]string{"product_id", "product_category_name"},
		func(r row) error {
			snap.Products = append(snap.Products, models.Product{
				ProductID:    r.str("product_id"),
				CategoryName: r.str("product_category_name"),
			})
			return nil
		})
	if err != nil {
		return nil, err
	}
	skipped += n

	n, err = readCSV(filepath.Join(dir, PaymentsFile),
		[]string{"order_id", "payment_type", "payment_value"},
		func(r row) error {
			value, err := r.float("payment_value")
			if err != nil {
				return err
			}
			seq, _ := r.int("payment_sequential")
			inst, _ := r.int("payment_installments")
			snap.Payments = append(snap.Payments, models.Payment{
				OrderID:      r.str("order_id"),
				Sequential:   seq,
				Type:         r.str("payment_type"),
				Installments: inst,
				Value:        value,
			})
			return nil
		})
	if err != nil {
		return nil, err
	}
	skipped += n

	n, err = readCSV(filepath.Join(dir, CustomersFile),
		[]string{"customer_id", "customer_unique_id", "customer_state"},
		func(r row) error {
			snap.Customers = append(snap.Customers, models.Customer{
				CustomerID:       r.str("customer_id"),
				CustomerUniqueID: r.str("customer_unique_id"),
				State:            r.str("customer_state"),
			})
			return nil
		})
	if err != nil {
		return nil, err
	}
	skipped += n

	n, err = readCSV(filepath.Join(dir, TranslationsFile),
		[]string{"product_category_name", "product_category_name_english"},
		func(r row) error {
			snap.Translations = append(snap.Translations, models.CategoryTranslation{
				CategoryName: r.str("product_category_name"),
				EnglishName:  r.str("product_category_name_english"),
			})
			return nil
		})
	if err != nil {
		return nil, err
	}
	skipped += n

	log.Info("snapshot loaded",
		zap.Int("orders", len(snap.Orders)),
		zap.Int("items", len(snap.Items)),
		zap.Int("products", len(snap.Products)),
		zap.Int("payments", len(snap.Payments)),
		zap.Int("customers", len(snap.Customers)),
		zap.Int("translations", len(snap.Translations)),
		zap.Int("skipped_rows", skipped),
		zap.Duration("took", time.Since(start)))
	return snap, nil
}

// row is one CSV record plus the header's name -> position mapping.
type row struct {
	cols map[string]int
	rec  []string
}

func (r row) str(name string) string {
	if i, ok := r.cols[name]; ok && i < len(r.rec) {
		return strings.TrimSpace(r.rec[i])
	}
	return ""
}

func (r row) float(name string) (float64, error) {
	return strconv.ParseFloat(r.str(name), 64)
}

func (r row) int(name string) (int, error) {
	return strconv.Atoi(r.str(name))
}

func (r row) ts(name string) (time.Time, error) {
	v := r.str(name)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", v)
}

// readCSV streams path row by row into each, matching columns by header
// name. It returns how many rows were dropped (ragged line or each
// rejecting the row).
func readCSV(path string, required []string, each func(row) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	head, err := rd.Read()
	if err != nil {
		return 0, fmt.Errorf("%s: read header: %w", filepath.Base(path), err)
	}
	cols := make(map[string]int, len(head))
	for i, name := range head {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return 0, fmt.Errorf("%s: missing column %q", filepath.Base(path), name)
		}
	}

	skipped := 0
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++ // ragged or unquotable line
			continue
		}
		if err := each(row{cols: cols, rec: rec}); err != nil {
			skipped++
		}
	}
	return skipped, nil
}
