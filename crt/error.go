package crt

// NotFound - Custom error to inform that no record was found for a given key
type NotFound struct {
	msg string
}

// Error - Used to notify that no record was found
func (E NotFound) Error() string {
	if E.msg == "" {
		return "no record found"
	}
	return E.msg
}

// NullKey - Custom error to inform that a nil key was given to an operation
type NullKey struct {
	msg string
}

// Error - Used to notify that a nil key was given
func (E NullKey) Error() string {
	if E.msg == "" {
		return "key can not be nil"
	}
	return E.msg
}

// InvalidConfig - Custom error to inform that the map was given invalid configuration parameters
type InvalidConfig struct {
	msg string
}

// Error - Used to notify that configuration parameters are invalid
func (E InvalidConfig) Error() string {
	if E.msg == "" {
		return "invalid map configuration"
	}
	return E.msg
}

// InvariantViolation - Custom error to inform that the table has ended up in a state it never should
// reach, either an insertion that exhausted its probing budget or a rehash that lost or gained records.
// A map that has returned this error should be discarded.
type InvariantViolation struct {
	msg string
}

// Error - Used to notify that a table invariant no longer holds
func (E InvariantViolation) Error() string {
	if E.msg == "" {
		return "table invariant violated"
	}
	return E.msg
}
