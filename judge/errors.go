package judge

import "errors"

// TransportError means the judge itself could not be reached or answered
// with something unusable. It says nothing about the submitted program.
type TransportError struct {
	Cause string
	Err   error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return "judge transport error: " + e.Cause + ": " + e.Err.Error()
	}
	return "judge transport error: " + e.Cause
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func transportErr(cause string, err error) *TransportError {
	return &TransportError{Cause: cause, Err: err}
}
