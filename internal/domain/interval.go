package domain

import "time"

const rentalDay = 24 * time.Hour

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. A booking ending exactly when another one
// starts does not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// RentalDays is the number of billable days for [pickup, returnAt):
// any started day counts as a whole one.
func RentalDays(pickup, returnAt time.Time) int64 {
	span := returnAt.Sub(pickup)
	days := int64(span / rentalDay)
	if span%rentalDay != 0 {
		days++
	}
	return days
}

// RentalPriceCents computes the immutable booking price from the
// per-day rate snapshotted at creation time.
func RentalPriceCents(dayRateCents int64, pickup, returnAt time.Time) int64 {
	return dayRateCents * RentalDays(pickup, returnAt)
}
