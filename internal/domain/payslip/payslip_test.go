package payslip

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/micro-mikko/lonasystem/internal/domain/employee"
)

func TestBuild(t *testing.T) {
	emp := employee.Employee{
		Namn:         "Anna Andersson",
		Personnummer: "198501012384",
		Avdelning:    "Ekonomi",
		Lon:          decimal.NewFromInt(45000),
	}

	data := Build(emp, 2026, 3)

	if !data.Kommunal.Equal(decimal.NewFromInt(14400)) {
		t.Fatalf("expected kommunalskatt 14400, got %s", data.Kommunal)
	}
	if !data.Statlig.IsZero() {
		t.Fatalf("expected statlig skatt 0, got %s", data.Statlig)
	}
	if !data.Nettolon.Equal(decimal.NewFromInt(30600)) {
		t.Fatalf("expected nettolön 30600, got %s", data.Nettolon)
	}
}

func TestFilename(t *testing.T) {
	got := Filename("Anna Andersson", 2026, 3)
	if got != "lonespec_Anna_Andersson_2026_03.pdf" {
		t.Fatalf("unexpected filename %q", got)
	}

	got = Filename("Bo", 2025, 12)
	if got != "lonespec_Bo_2025_12.pdf" {
		t.Fatalf("unexpected filename %q", got)
	}
}

func TestMonthName(t *testing.T) {
	if MonthName(1) != "januari" || MonthName(12) != "december" {
		t.Fatal("unexpected month names")
	}
	if MonthName(13) != "13" {
		t.Fatalf("out-of-range month should fall back to the number, got %q", MonthName(13))
	}
}

func TestFormatSEK(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"45000", "45 000,00"},
		{"1234567.5", "1 234 567,50"},
		{"0", "0,00"},
		{"999.99", "999,99"},
	}
	for _, tc := range cases {
		amount, _ := decimal.NewFromString(tc.in)
		if got := formatSEK(amount); got != tc.want {
			t.Fatalf("formatSEK(%s): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestRenderProducesPDF(t *testing.T) {
	emp := employee.Employee{
		Namn:         "Åsa Öberg",
		Personnummer: "199001019876",
		Avdelning:    "IT",
		Lon:          decimal.NewFromInt(100000),
	}

	out, err := Render(Build(emp, 2026, 8))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}
