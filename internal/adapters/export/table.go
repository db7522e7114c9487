package export

import (
	"strconv"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

// Table is the flat report representation shared by all export encoders.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func ChurnTable(customers []domain.Customer) Table {
	t := Table{
		Title:   "Churn Risk Report",
		Headers: []string{"customer_id", "name", "email", "join_date", "last_purchase_date", "total_spent", "order_count", "churn_probability"},
	}
	for _, c := range customers {
		lastPurchase := ""
		if c.LastPurchaseDate != nil {
			lastPurchase = c.LastPurchaseDate.String()
		}
		t.Rows = append(t.Rows, []string{
			c.CustomerID,
			c.Name,
			c.Email,
			c.JoinDate.String(),
			lastPurchase,
			formatFloat(c.TotalSpent),
			strconv.Itoa(c.OrderCount),
			formatFloat(c.ChurnProbability),
		})
	}
	return t
}

func ForecastTable(forecasts []domain.Forecast) Table {
	t := Table{
		Title:   "Demand Forecast Report",
		Headers: []string{"product_id", "product_name", "category", "forecast_date", "predicted_quantity", "confidence"},
	}
	for _, f := range forecasts {
		t.Rows = append(t.Rows, []string{
			f.ProductID,
			f.ProductName,
			f.Category,
			f.ForecastDate.String(),
			formatFloat(f.PredictedQuantity),
			f.Confidence,
		})
	}
	return t
}

func InventoryTable(recommendations []domain.Recommendation) Table {
	t := Table{
		Title:   "Inventory Reorder Report",
		Headers: []string{"product_id", "product_name", "category", "current_stock", "reorder_point", "unit_cost", "predicted_demand", "needs_reorder", "recommended_order_qty"},
	}
	for _, r := range recommendations {
		t.Rows = append(t.Rows, []string{
			r.ProductID,
			r.ProductName,
			r.Category,
			strconv.Itoa(r.CurrentStock),
			strconv.Itoa(r.ReorderPoint),
			formatFloat(r.UnitCost),
			formatFloat(r.PredictedDemand),
			strconv.FormatBool(r.NeedsReorder),
			strconv.Itoa(r.RecommendedOrderQty),
		})
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
