package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mv(productID string, dir Direction, qty int) Movement {
	return Movement{ProductID: productID, Direction: dir, Quantity: qty}
}

func TestBalance_Empty(t *testing.T) {
	assert.Equal(t, 0, Balance(nil))
	assert.Equal(t, 0, Balance([]Movement{}))
}

func TestBalance_InboundMinusOutbound(t *testing.T) {
	movements := []Movement{
		mv("p1", DirectionInbound, 10),
		mv("p1", DirectionOutbound, 3),
		mv("p1", DirectionInbound, 5),
		mv("p1", DirectionOutbound, 4),
	}

	assert.Equal(t, 8, Balance(movements))
}

func TestBalance_CanBeNegative(t *testing.T) {
	movements := []Movement{
		mv("p1", DirectionInbound, 2),
		mv("p1", DirectionOutbound, 5),
	}

	assert.Equal(t, -3, Balance(movements))
}

func TestBalance_OrderIndependent(t *testing.T) {
	movements := make([]Movement, 0, 200)
	inbound, outbound := 0, 0
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		qty := rng.Intn(50) + 1
		if rng.Intn(2) == 0 {
			movements = append(movements, mv("p1", DirectionInbound, qty))
			inbound += qty
		} else {
			movements = append(movements, mv("p1", DirectionOutbound, qty))
			outbound += qty
		}
	}

	want := inbound - outbound
	assert.Equal(t, want, Balance(movements))

	for i := 0; i < 10; i++ {
		rng.Shuffle(len(movements), func(a, b int) { movements[a], movements[b] = movements[b], movements[a] })
		assert.Equal(t, want, Balance(movements))
	}
}

func TestBalances_PerProduct(t *testing.T) {
	products := []Product{
		{ID: "p1", Name: "Bolt M6"},
		{ID: "p2", Name: "Nut M6"},
		{ID: "p3", Name: "Washer"},
	}
	movements := []Movement{
		mv("p1", DirectionInbound, 10),
		mv("p1", DirectionOutbound, 3),
		mv("p2", DirectionInbound, 4),
		mv("unknown", DirectionInbound, 100),
	}

	items := Balances(products, movements)

	assert.Len(t, items, 3)
	assert.Equal(t, StockItem{ProductID: "p1", ProductName: "Bolt M6", Balance: 7, Band: BandHealthy}, items[0])
	assert.Equal(t, StockItem{ProductID: "p2", ProductName: "Nut M6", Balance: 4, Band: BandLow}, items[1])
	assert.Equal(t, StockItem{ProductID: "p3", ProductName: "Washer", Balance: 0, Band: BandDepleted}, items[2])
}

func TestClassify(t *testing.T) {
	tests := []struct {
		balance int
		want    Band
	}{
		{balance: 100, want: BandHealthy},
		{balance: 6, want: BandHealthy},
		{balance: 5, want: BandLow},
		{balance: 1, want: BandLow},
		{balance: 0, want: BandDepleted},
		{balance: -4, want: BandDepleted},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.balance), "balance %d", tt.balance)
	}
}

func TestSummarize(t *testing.T) {
	items := []StockItem{
		{Balance: 10},
		{Balance: 6},
		{Balance: 5},
		{Balance: 0},
		{Balance: -1},
	}

	assert.Equal(t, Summary{Total: 5, Healthy: 2, Low: 1, Depleted: 2}, Summarize(items))
	assert.Equal(t, Summary{}, Summarize(nil))
}
