package sim

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// Summary aggregates statistics over a transaction collection.
type Summary struct {
	Transactions         int            `yaml:"transactions"`
	Items                int            `yaml:"items"`
	Revenue              float64        `yaml:"revenue"`
	MeanBasketSize       float64        `yaml:"mean_basket_size"`
	UniqueCustomers      int            `yaml:"unique_customers"`
	FirstTime            float64        `yaml:"first_time"`
	LastTime             float64        `yaml:"last_time"`
	StoreDistribution    map[int]int    `yaml:"store_distribution"`    // store id → transactions
	CategoryDistribution map[string]int `yaml:"category_distribution"` // category → items sold
}

// Summarize computes aggregate statistics over txns.
// Safe for nil or empty input (returns zero-value fields).
func Summarize(txns []*Transaction) *Summary {
	summary := &Summary{
		StoreDistribution:    make(map[int]int),
		CategoryDistribution: make(map[string]int),
	}
	if len(txns) == 0 {
		return summary
	}

	customers := make(map[int]bool)
	summary.FirstTime = math.Inf(1)
	summary.LastTime = math.Inf(-1)
	for _, t := range txns {
		summary.Transactions++
		summary.Items += len(t.Products)
		summary.Revenue += t.Total()
		summary.StoreDistribution[t.Store.ID]++
		customers[t.Customer.ID] = true
		for _, p := range t.Products {
			summary.CategoryDistribution[p.Category]++
		}
		summary.FirstTime = math.Min(summary.FirstTime, t.Time)
		summary.LastTime = math.Max(summary.LastTime, t.Time)
	}
	summary.UniqueCustomers = len(customers)
	summary.MeanBasketSize = float64(summary.Items) / float64(summary.Transactions)
	summary.Revenue = math.Round(summary.Revenue*100) / 100
	return summary
}

// Log writes the summary at info level, categories in name order.
func (s *Summary) Log() {
	logrus.Infof("Transactions: %d, items: %d, revenue: %.2f, mean basket size: %.2f, customers with purchases: %d",
		s.Transactions, s.Items, s.Revenue, s.MeanBasketSize, s.UniqueCustomers)
	categories := make([]string, 0, len(s.CategoryDistribution))
	for c := range s.CategoryDistribution {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		logrus.Debugf("  %-16s %d items", c, s.CategoryDistribution[c])
	}
}
