package geometry

import "math"

var missHit = Hit{T: Miss}

func isInf(t float64) bool {
	return math.IsInf(t, 0)
}

// closer reports whether t beats the current best. Only strictly negative
// finite values qualify and ties keep the earlier candidate.
func closer(t float64, bestIndex int, best float64) bool {
	if !(t < 0) || isInf(t) {
		return false
	}
	return bestIndex < 0 || t > best
}

// NearestIndex returns the index of the parameter closest to zero among the
// strictly negative ones, or -1 when there is none.
func NearestIndex(ts []float64) int {
	bestIndex := -1
	best := Miss
	for i, t := range ts {
		if closer(t, bestIndex, best) {
			bestIndex, best = i, t
		}
	}
	return bestIndex
}

// Nearest selects the winning hit among candidates using the same policy
// as NearestIndex. It returns -1 and a miss when nothing was hit.
func Nearest(hits []Hit) (int, Hit) {
	bestIndex := -1
	best := missHit
	for i, h := range hits {
		if closer(h.T, bestIndex, best.T) {
			bestIndex, best = i, h
		}
	}
	return bestIndex, best
}

// nearestPart picks the winning part of a composite shape
func nearestPart(ts []float64) Hit {
	i := NearestIndex(ts)
	if i < 0 {
		return missHit
	}
	return Hit{T: ts[i], Part: i}
}
