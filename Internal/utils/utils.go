package utils

func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// CalculateAvgVolume averages the last `period` entries of the slice. Returns
// 0 when there is not enough history.
func CalculateAvgVolume(volumes []int64, period int) float64 {
	if period <= 0 || len(volumes) < period {
		return 0.0
	}
	var sum int64
	for _, v := range volumes[len(volumes)-period:] {
		sum += v
	}
	return float64(sum) / float64(period)
}

func Min(values ...float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func Max(values ...float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
