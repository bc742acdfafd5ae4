package vacation

import "time"

// AnnualAccrualDays is the fixed vacation entitlement per employee and
// calendar year. Not pro-rated by hire date or employment fraction.
const AnnualAccrualDays = 25

// Withdrawal day-count bounds, enforced at the request boundary.
const (
	MinWithdrawalDays = 1
	MaxWithdrawalDays = 365
)

type Withdrawal struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	AntalDagar int       `json:"antalDagar"`
	Datum      time.Time `json:"datum"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Balance is the per-employee accrual state for one calendar year.
type Balance struct {
	EmployeeID int64 `json:"employeeId"`
	Year       int   `json:"year"`
	Accrued    int   `json:"accrued"`
	Taken      int   `json:"taken"`
	Balance    int   `json:"balance"`
}

// Remaining returns the days left of the annual accrual after taken days.
func Remaining(taken int) int {
	return AnnualAccrualDays - taken
}

// Fits reports whether a requested withdrawal still fits within the
// annual accrual; exactly exhausting the accrual is allowed.
func Fits(taken, requested int) bool {
	return taken+requested <= AnnualAccrualDays
}
