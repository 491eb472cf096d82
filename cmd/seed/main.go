package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"shop-analytics/internal/engine"
)

// seed generates a demo snapshot and writes it out as the six CSV
// files the server's DATA_DIR loader expects. Useful for exercising
// the CSV path end to end instead of the in-process generator.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dir := os.Getenv("SEED_DIR")
	if dir == "" {
		dir = "data"
	}
	orders := envInt("SAMPLE_ORDERS", 5000)
	seed := int64(envInt("SEED", 1))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Fatal("create seed dir", zap.String("dir", dir), zap.Error(err))
	}

	snap := engine.GenerateSample(orders, seed)
	totalRows := len(snap.Orders) + len(snap.Items) + len(snap.Products) +
		len(snap.Payments) + len(snap.Customers) + len(snap.Translations)
	bar := progressbar.Default(int64(totalRows))

	write := func(name string, header []string, rows func(emit func([]string))) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			logger.Fatal("create file", zap.String("file", name), zap.Error(err))
		}
		w := csv.NewWriter(f)
		_ = w.Write(header)
		rows(func(rec []string) {
			_ = w.Write(rec)
			_ = bar.Add(1)
		})
		w.Flush()
		if err := w.Error(); err != nil {
			logger.Fatal("write file", zap.String("file", name), zap.Error(err))
		}
		if err := f.Close(); err != nil {
			logger.Fatal("close file", zap.String("file", name), zap.Error(err))
		}
	}

	write(engine.OrdersFile,
		[]string{"order_id", "customer_id", "order_status", "order_purchase_timestamp"},
		func(emit func([]string)) {
			for _, o := range snap.Orders {
				emit([]string{o.OrderID, o.CustomerID, o.Status,
					o.PurchaseTimestamp.Format("2006-01-02 15:04:05")})
			}
		})

	write(engine.ItemsFile,
		[]string{"order_id", "order_item_id", "product_id", "price", "freight_value"},
		func(emit func([]string)) {
			for _, it := range snap.Items {
				emit([]string{it.OrderID, strconv.Itoa(it.OrderItemID), it.ProductID,
					ftoa(it.Price), ftoa(it.FreightValue)})
			}
		})

	write(engine.ProductsFile,
		[]string{"product_id", "product_category_name"},
		func(emit func([]string)) {
			for _, p := range snap.Products {
				emit([]string{p.ProductID, p.CategoryName})
			}
		})

	write(engine.PaymentsFile,
		[]string{"order_id", "payment_sequential", "payment_type", "payment_installments", "payment_value"},
		func(emit func([]string)) {
			for _, p := range snap.Payments {
				emit([]string{p.OrderID, strconv.Itoa(p.Sequential), p.Type,
					strconv.Itoa(p.Installments), ftoa(p.Value)})
			}
		})

	write(engine.CustomersFile,
		[]string{"customer_id", "customer_unique_id", "customer_state"},
		func(emit func([]string)) {
			for _, c := range snap.Customers {
				emit([]string{c.CustomerID, c.CustomerUniqueID, c.State})
			}
		})

	write(engine.TranslationsFile,
		[]string{"product_category_name", "product_category_name_english"},
		func(emit func([]string)) {
			for _, tr := range snap.Translations {
				emit([]string{tr.CategoryName, tr.EnglishName})
			}
		})

	logger.Info("seed complete",
		zap.String("dir", dir),
		zap.Int("orders", len(snap.Orders)),
		zap.Int("rows", totalRows))
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
