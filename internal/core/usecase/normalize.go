package usecase

import (
	"github.com/google/uuid"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

// The normalizers are pure transforms from raw rows to canonical records.
// Validation policy: a row with a missing or unparseable required field is
// dropped; a missing required column fails the whole batch. Storage replace
// is the caller's responsibility.

func NormalizeOrders(rows []Row, header []string) ([]domain.Order, error) {
	if err := requireColumns(header, "order_date", "customer_id", "product_id"); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		key := row.fingerprint(header)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if row["order_date"] == "" || row["customer_id"] == "" || row["product_id"] == "" {
			continue
		}
		orderDate, err := domain.ParseDate(row["order_date"])
		if err != nil {
			continue
		}

		quantity := coerceInt(row["quantity"], 0)
		price := coerceFloat(row["price"], 0)
		status := row["status"]
		if status == "" {
			status = domain.DefaultOrderStatus
		}

		orders = append(orders, domain.Order{
			ID:          uuid.NewString(),
			OrderDate:   orderDate,
			CustomerID:  row["customer_id"],
			ProductID:   row["product_id"],
			ProductName: row["product_name"],
			Category:    row["category"],
			Quantity:    quantity,
			Price:       price,
			Total:       float64(quantity) * price,
			Status:      status,
		})
	}
	return orders, nil
}

func NormalizeCustomers(rows []Row, header []string) ([]domain.Customer, error) {
	if err := requireColumns(header, "customer_id", "name", "email", "join_date"); err != nil {
		return nil, err
	}
	hasLastPurchase := hasColumn(header, "last_purchase_date")

	seen := make(map[string]struct{}, len(rows))
	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		customerID := row["customer_id"]
		if customerID != "" {
			// Duplicates by business key keep the first occurrence, even
			// if that occurrence is later dropped by field validation.
			if _, dup := seen[customerID]; dup {
				continue
			}
			seen[customerID] = struct{}{}
		}

		if customerID == "" || row["name"] == "" || row["email"] == "" {
			continue
		}
		joinDate, err := domain.ParseDate(row["join_date"])
		if err != nil {
			continue
		}

		var lastPurchase *domain.Date
		if hasLastPurchase {
			if d, err := domain.ParseDate(row["last_purchase_date"]); err == nil {
				lastPurchase = &d
			}
		}

		customers = append(customers, domain.Customer{
			ID:               uuid.NewString(),
			CustomerID:       customerID,
			Name:             row["name"],
			Email:            row["email"],
			JoinDate:         joinDate,
			LastPurchaseDate: lastPurchase,
		})
	}
	return customers, nil
}

func NormalizeInventory(rows []Row, header []string) ([]domain.InventoryItem, error) {
	if err := requireColumns(header, "product_id", "product_name"); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	items := make([]domain.InventoryItem, 0, len(rows))
	for _, row := range rows {
		productID := row["product_id"]
		if productID != "" {
			if _, dup := seen[productID]; dup {
				continue
			}
			seen[productID] = struct{}{}
		}

		if productID == "" || row["product_name"] == "" {
			continue
		}

		items = append(items, domain.InventoryItem{
			ID:           uuid.NewString(),
			ProductID:    productID,
			ProductName:  row["product_name"],
			Category:     row["category"],
			CurrentStock: coerceInt(row["current_stock"], 0),
			ReorderPoint: coerceInt(row["reorder_point"], domain.DefaultReorderPoint),
			UnitCost:     coerceFloat(row["unit_cost"], 0),
		})
	}
	return items, nil
}
