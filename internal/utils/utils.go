package utils

// IsEqual - Returns true if a and b are equal both in size and contents
func IsEqual(a, b []byte) bool {
	lenA := len(a)
	if lenA != len(b) {
		return false
	}

	for i := 0; i < lenA; i++ {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// RoundUp2 - Rounds up to the nearest exponent of 2 that covers the given value
func RoundUp2(value int) (roundedUp int) {
	roundedUp = 1
	for roundedUp < value {
		roundedUp <<= 1
	}

	return
}

// Log2 - Returns the integer part of the base 2 logarithm of the given value
func Log2(value int) (log int) {
	for value > 1 {
		value >>= 1
		log++
	}

	return
}

// CopyBytes - Returns a copy of the given byte slice, or nil if the slice is nil
func CopyBytes(a []byte) (b []byte) {
	if a == nil {
		return
	}

	b = make([]byte, len(a))
	_ = copy(b, a)

	return
}
