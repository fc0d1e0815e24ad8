package domain

import "time"

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// DateLayout is the wire and storage format of a movement's effective date.
const DateLayout = "2006-01-02"

func (d Direction) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// Signed returns qty with the sign the direction applies to a balance.
func (d Direction) Signed(qty int) int {
	if d == DirectionOutbound {
		return -qty
	}
	return qty
}

type Movement struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	ProductID   string    `db:"product_id"`
	ProductName string    `db:"product_name"`
	Direction   Direction `db:"direction"`
	Quantity    int       `db:"quantity"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
}

// MovementInput is a movement proposed for persistence.
type MovementInput struct {
	ProductID string
	Direction Direction
	Quantity  int
	Date      time.Time
}
