package service

// ValidationError is a client-caused rejection: a field out of its
// admissible range or otherwise malformed. Handlers turn it into HTTP 400;
// every other error from a device round-trip becomes HTTP 500.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
