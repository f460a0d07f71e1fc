package omath

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Sum ...
func Sum[T constraints.Float](nums []T) (result T) {
	for _, v := range nums {
		result += v
	}
	return result
}

// Mean ...
func Mean[T constraints.Float](nums []T) T {
	if len(nums) == 0 {
		return 0
	}
	return Sum(nums) / T(len(nums))
}

// Max ...
func Max[T constraints.Float](nums []T) (m T) {
	for i, v := range nums {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Variance ...
func Variance[T constraints.Float](nums []T) (variance T) {
	if len(nums) == 0 {
		return 0
	}
	mean := Mean(nums)
	for _, v := range nums {
		variance += (v - mean) * (v - mean)
	}
	return variance / T(len(nums))
}

// StandardDeviation ...
func StandardDeviation[T constraints.Float](nums []T) T {
	return T(math.Sqrt(float64(Variance(nums))))
}
