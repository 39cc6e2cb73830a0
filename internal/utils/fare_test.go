package utils

import (
	"math"
	"testing"
)

func TestTotalFareExact(t *testing.T) {
	// 10.00 for three seats is exactly 30.00, never 29.99 or 30.000001.
	total, err := TotalFare(1000, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3000 {
		t.Fatalf("total = %d cents, want 3000", total)
	}
	if got := FormatMoney(total); got != "30.00" {
		t.Fatalf("formatted total = %q, want 30.00", got)
	}
}

func TestTotalFareSingleSeat(t *testing.T) {
	total, err := TotalFare(1999, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1999 {
		t.Fatalf("total = %d, want 1999", total)
	}
}

func TestTotalFareZeroBase(t *testing.T) {
	total, err := TotalFare(0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Fatalf("total = %d, want 0", total)
	}
}

func TestTotalFareRejectsBadInput(t *testing.T) {
	if _, err := TotalFare(-100, 2); err == nil {
		t.Fatalf("negative base fare should fail")
	}
	if _, err := TotalFare(1000, 0); err == nil {
		t.Fatalf("zero seats should fail")
	}
	if _, err := TotalFare(1000, -1); err == nil {
		t.Fatalf("negative seats should fail")
	}
}

func TestTotalFareOverflow(t *testing.T) {
	if _, err := TotalFare(math.MaxInt64/2, 3); err == nil {
		t.Fatalf("overflow should fail")
	}
}
