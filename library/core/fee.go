package core

const (
	// FreeLoanDays is the number of days a book can be kept without a fee.
	FreeLoanDays = 10

	// DailyLateFee is charged for every day beyond FreeLoanDays.
	DailyLateFee = 15
)

// LateFee returns the cost of a loan that lasted durationDays. It is never negative.
func LateFee(durationDays int) int {
	return max(0, (durationDays-FreeLoanDays)*DailyLateFee)
}
