package domain

// Band classifies a balance for display. It is never an error condition.
type Band string

const (
	BandHealthy  Band = "healthy"
	BandLow      Band = "low"
	BandDepleted Band = "depleted"
)

// LowStockThreshold is the highest balance still reported as low.
const LowStockThreshold = 5

type StockItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Balance     int    `json:"balance"`
	Band        Band   `json:"band"`
}

type Summary struct {
	Total    int `json:"total"`
	Healthy  int `json:"healthy"`
	Low      int `json:"low"`
	Depleted int `json:"depleted"`
}

// Balance folds movements into inbound minus outbound. The result does not
// depend on the order of movements.
func Balance(movements []Movement) int {
	balance := 0
	for _, m := range movements {
		balance += m.Direction.Signed(m.Quantity)
	}
	return balance
}

// Balances returns one item per product, in the order of products. Products
// without movements get a zero balance; movements of unknown products are ignored.
func Balances(products []Product, movements []Movement) []StockItem {
	byProduct := make(map[string]int, len(products))
	for _, p := range products {
		byProduct[p.ID] = 0
	}
	for _, m := range movements {
		if _, ok := byProduct[m.ProductID]; !ok {
			continue
		}
		byProduct[m.ProductID] += m.Direction.Signed(m.Quantity)
	}

	items := make([]StockItem, 0, len(products))
	for _, p := range products {
		balance := byProduct[p.ID]
		items = append(items, StockItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Balance:     balance,
			Band:        Classify(balance),
		})
	}
	return items
}

func Classify(balance int) Band {
	switch {
	case balance > LowStockThreshold:
		return BandHealthy
	case balance > 0:
		return BandLow
	default:
		return BandDepleted
	}
}

func Summarize(items []StockItem) Summary {
	s := Summary{Total: len(items)}
	for _, item := range items {
		switch Classify(item.Balance) {
		case BandHealthy:
			s.Healthy++
		case BandLow:
			s.Low++
		default:
			s.Depleted++
		}
	}
	return s
}
