package media

import "fmt"

// InvalidRequestError reports a request the caller can correct (maps to 400).
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// SourceUnavailableError reports that neither the requested source nor the
// placeholder could be fetched (maps to 500, operator-actionable).
type SourceUnavailableError struct {
	Name string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Name, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }
