package usecase

import (
	"sort"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

const topProductsLimit = 5

// BuildKPIReport computes revenue and churn summary statistics from the
// current orders and customers snapshots. No orders means an all-zero
// report, never an error.
func BuildKPIReport(orders []domain.Order, customers []domain.Customer) *domain.KPIReport {
	report := &domain.KPIReport{
		TopProducts:       []domain.ProductRevenue{},
		RevenueByCategory: []domain.CategoryRevenue{},
	}
	if len(orders) == 0 {
		return report
	}

	for _, o := range orders {
		report.TotalRevenue += o.Total
	}
	report.TotalOrders = len(orders)
	report.AvgOrderValue = report.TotalRevenue / float64(report.TotalOrders)

	if len(customers) > 0 {
		atRisk := 0
		for _, c := range customers {
			if c.ChurnProbability > 0.5 {
				atRisk++
			}
		}
		report.ChurnRate = float64(atRisk) / float64(len(customers))
	}

	report.TopProducts = topProducts(orders)
	report.RevenueByCategory = revenueByCategory(orders)
	return report
}

func topProducts(orders []domain.Order) []domain.ProductRevenue {
	type key struct{ id, name string }
	totals := make(map[key]float64)
	keys := make([]key, 0)
	for _, o := range orders {
		k := key{id: o.ProductID, name: o.ProductName}
		if _, ok := totals[k]; !ok {
			keys = append(keys, k)
		}
		totals[k] += o.Total
	}

	products := make([]domain.ProductRevenue, 0, len(keys))
	for _, k := range keys {
		products = append(products, domain.ProductRevenue{ProductID: k.id, ProductName: k.name, Total: totals[k]})
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].Total > products[j].Total })
	if len(products) > topProductsLimit {
		products = products[:topProductsLimit]
	}
	return products
}

func revenueByCategory(orders []domain.Order) []domain.CategoryRevenue {
	totals := make(map[string]float64)
	for _, o := range orders {
		totals[o.Category] += o.Total
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	out := make([]domain.CategoryRevenue, 0, len(categories))
	for _, category := range categories {
		out = append(out, domain.CategoryRevenue{Category: category, Total: totals[category]})
	}
	return out
}
