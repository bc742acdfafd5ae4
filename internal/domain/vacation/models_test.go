package vacation

import "testing"

func TestRemaining(t *testing.T) {
	if got := Remaining(0); got != 25 {
		t.Fatalf("expected full accrual 25, got %d", got)
	}
	if got := Remaining(10); got != 15 {
		t.Fatalf("expected 15, got %d", got)
	}
	if got := Remaining(25); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestFits(t *testing.T) {
	if !Fits(0, 25) {
		t.Fatal("withdrawing the full accrual at once should fit")
	}
	if !Fits(20, 5) {
		t.Fatal("exactly exhausting the accrual should fit")
	}
	if Fits(20, 6) {
		t.Fatal("exceeding the accrual must not fit")
	}
	if Fits(25, 1) {
		t.Fatal("an exhausted accrual must reject further days")
	}
}
