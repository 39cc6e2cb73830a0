package utils

import "fmt"

// TotalFare computes base fare (cents) times seat count with exact integer
// arithmetic. The total is frozen onto the booking row at creation time.
func TotalFare(baseFareCents int64, numSeats int) (int64, error) {
	if baseFareCents < 0 {
		return 0, fmt.Errorf("negative base fare")
	}
	if numSeats < 1 {
		return 0, fmt.Errorf("seat count must be at least 1")
	}
	total := baseFareCents * int64(numSeats)
	if baseFareCents != 0 && total/baseFareCents != int64(numSeats) {
		return 0, fmt.Errorf("fare overflow")
	}
	return total, nil
}
