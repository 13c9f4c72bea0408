package service

// Pure aggregation helpers over in-memory amount lists. Negative amounts
// (refunds) get no special handling; max and min treat sign normally.

func maxAmount(amounts []float64) float64 {
	if len(amounts) == 0 {
		return 0
	}
	max := amounts[0]
	for _, a := range amounts[1:] {
		if a > max {
			max = a
		}
	}
	return max
}

func minAmount(amounts []float64) float64 {
	if len(amounts) == 0 {
		return 0
	}
	min := amounts[0]
	for _, a := range amounts[1:] {
		if a < min {
			min = a
		}
	}
	return min
}

func sumAmounts(amounts []float64) float64 {
	var sum float64
	for _, a := range amounts {
		sum += a
	}
	return sum
}

func countPositive(amounts []float64) int {
	var n int
	for _, a := range amounts {
		if a > 0 {
			n++
		}
	}
	return n
}
