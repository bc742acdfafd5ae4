package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raise is an immutable audit record: gammal_lon is the pay immediately
// before the raise, ny_lon the pay after, procent_okning the derived
// increase. Rows are only ever inserted.
type Raise struct {
	ID            int64           `json:"id"`
	EmployeeID    int64           `json:"employeeId"`
	GammalLon     decimal.Decimal `json:"gammalLon"`
	NyLon         decimal.Decimal `json:"nyLon"`
	ProcentOkning decimal.Decimal `json:"procentOkning"`
	Orsak         *string         `json:"orsak,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
