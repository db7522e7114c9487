package domain

import "fmt"

// Dataset names an uploadable collection.
type Dataset string

const (
	DatasetOrders    Dataset = "orders"
	DatasetCustomers Dataset = "customers"
	DatasetInventory Dataset = "inventory"
)

func ParseDataset(s string) (Dataset, error) {
	switch Dataset(s) {
	case DatasetOrders, DatasetCustomers, DatasetInventory:
		return Dataset(s), nil
	}
	return "", WrapError(ErrInvalidInput, "parse dataset", fmt.Errorf("unsupported collection %q", s))
}

// NeedsRecompute reports whether uploading this dataset invalidates derived
// analytics state. Inventory feeds read-time joins only.
func (d Dataset) NeedsRecompute() bool {
	return d == DatasetOrders || d == DatasetCustomers
}

const (
	DefaultOrderStatus = "completed"

	// DefaultReorderPoint applies when the uploaded value is absent or invalid.
	DefaultReorderPoint = 10

	ForecastConfidenceMedium = "medium"
)

// Order is an immutable sales record. Total is always quantity x price as
// recomputed during ingestion, never trusted from the source file.
type Order struct {
	ID          string  `json:"id"`
	OrderDate   Date    `json:"order_date"`
	CustomerID  string  `json:"customer_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
	Status      string  `json:"status"`
}

// Customer carries both uploaded identity fields and derived purchase
// aggregates. The derived fields are owned by the churn scorer.
type Customer struct {
	ID               string  `json:"id"`
	CustomerID       string  `json:"customer_id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	JoinDate         Date    `json:"join_date"`
	LastPurchaseDate *Date   `json:"last_purchase_date"`
	TotalSpent       float64 `json:"total_spent"`
	OrderCount       int     `json:"order_count"`
	ChurnProbability float64 `json:"churn_probability"`
}

// CustomerDerived is the slice of Customer recomputed on every scoring pass.
type CustomerDerived struct {
	TotalSpent       float64
	OrderCount       int
	LastPurchaseDate *Date
	ChurnProbability float64
}

type InventoryItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	CurrentStock int     `json:"current_stock"`
	ReorderPoint int     `json:"reorder_point"`
	UnitCost     float64 `json:"unit_cost"`
}

// Forecast is one predicted day of demand for one product. The forecast
// collection is regenerated wholesale on every run; no history is kept.
type Forecast struct {
	ID                string  `json:"id"`
	ProductID         string  `json:"product_id"`
	ProductName       string  `json:"product_name"`
	Category          string  `json:"category"`
	ForecastDate      Date    `json:"forecast_date"`
	PredictedQuantity float64 `json:"predicted_quantity"`
	Confidence        string  `json:"confidence"`
}
