package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee field names follow the wire schema: namn (full name),
// personnummer (national id, unique), lon (gross monthly pay in SEK),
// avdelning (department).
type Employee struct {
	ID           int64           `json:"id"`
	Namn         string          `json:"namn"`
	Personnummer string          `json:"personnummer"`
	Lon          decimal.Decimal `json:"lon"`
	Avdelning    string          `json:"avdelning"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

type CreateInput struct {
	Namn         string
	Personnummer string
	Lon          decimal.Decimal
	Avdelning    string
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Namn         *string
	Personnummer *string
	Lon          *decimal.Decimal
	Avdelning    *string
}
