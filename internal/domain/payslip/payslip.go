// Package payslip assembles and renders monthly pay slips. All tax logic
// lives in the tax package; this package only lays the numbers out.
package payslip

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/micro-mikko/lonasystem/internal/domain/employee"
	"github.com/micro-mikko/lonasystem/internal/domain/tax"
)

type Data struct {
	Namn         string
	Personnummer string
	Avdelning    string
	Year         int
	Month        int
	Bruttolon    decimal.Decimal
	Kommunal     decimal.Decimal
	Statlig      decimal.Decimal
	TotalSkatt   decimal.Decimal
	Nettolon     decimal.Decimal
}

// Build assembles the slip for one employee and month from the monthly
// tax breakdown of the employee's current pay.
func Build(e employee.Employee, year, month int) Data {
	breakdown := tax.CalculateMonthly(e.Lon)
	return Data{
		Namn:         e.Namn,
		Personnummer: e.Personnummer,
		Avdelning:    e.Avdelning,
		Year:         year,
		Month:        month,
		Bruttolon:    e.Lon,
		Kommunal:     breakdown.Local,
		Statlig:      breakdown.National,
		TotalSkatt:   breakdown.Total,
		Nettolon:     tax.Net(e.Lon, breakdown),
	}
}

// Filename returns the download name, e.g. lonespec_Anna_Andersson_2026_03.pdf.
func Filename(namn string, year, month int) string {
	return fmt.Sprintf("lonespec_%s_%d_%02d.pdf", strings.ReplaceAll(namn, " ", "_"), year, month)
}

var monthNames = [...]string{
	"", "januari", "februari", "mars", "april", "maj", "juni",
	"juli", "augusti", "september", "oktober", "november", "december",
}

func MonthName(month int) string {
	if month >= 1 && month <= 12 {
		return monthNames[month]
	}
	return fmt.Sprintf("%d", month)
}

// formatSEK renders an amount Swedish style: space as thousands
// separator, comma as decimal mark.
func formatSEK(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(digit)
	}
	return sign + grouped.String() + "," + frac
}
