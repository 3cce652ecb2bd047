/*Package eq contains small slice-equality helpers shared by the test suite.*/
package eq

// Float64s returns true if two []float64 arrays have the same length and
// elementwise-equal values.
func Float64s(x, y []float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Float64sEps returns true if two []float64 arrays have the same length and
// are elementwise within eps of one another.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		d := x[i] - y[i]
		if d < 0 {
			d = -d
		}
		if d > eps {
			return false
		}
	}
	return true
}

// Vec3Eps returns true if two [3]float64 vectors are within eps of one
// another in every component.
func Vec3Eps(x, y [3]float64, eps float64) bool {
	for i := 0; i < 3; i++ {
		d := x[i] - y[i]
		if d < 0 {
			d = -d
		}
		if d > eps {
			return false
		}
	}
	return true
}

// Ints returns true if two []int arrays have the same length and
// elementwise-equal values.
func Ints(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// IntSets returns true if two []int arrays contain the same multiset of
// values, ignoring order.
func IntSets(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}
	counts := make(map[int]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	for _, v := range y {
		counts[v]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}
