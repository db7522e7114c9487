package domain

type ProductRevenue struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Total       float64 `json:"total"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type KPIReport struct {
	TotalRevenue      float64           `json:"total_revenue"`
	TotalOrders       int               `json:"total_orders"`
	AvgOrderValue     float64           `json:"avg_order_value"`
	ChurnRate         float64           `json:"churn_rate"`
	TopProducts       []ProductRevenue  `json:"top_products"`
	RevenueByCategory []CategoryRevenue `json:"revenue_by_category"`
}

// Recommendation augments an inventory item with forecast-driven reorder advice.
// It is computed on read and never stored.
type Recommendation struct {
	InventoryItem
	PredictedDemand     float64 `json:"predicted_demand"`
	NeedsReorder        bool    `json:"needs_reorder"`
	RecommendedOrderQty int     `json:"recommended_order_qty"`
}

const (
	ScenarioPriceChange = "price_change"
	ScenarioAdSpend     = "ad_spend"
)

// SimulationResult projects revenue under a what-if scenario. ROI is set for
// ad_spend only.
type SimulationResult struct {
	Scenario         string   `json:"scenario"`
	CurrentRevenue   float64  `json:"current_revenue"`
	SimulatedRevenue float64  `json:"simulated_revenue"`
	Change           float64  `json:"change"`
	ChangePercent    float64  `json:"change_percent"`
	ROI              *float64 `json:"roi,omitempty"`
}
