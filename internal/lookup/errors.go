package lookup

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound means the provider had no usable overview for the
	// ticker, including when it answered with a quota advisory instead.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrHistoricalNotFound means the provider sent no daily series.
	ErrHistoricalNotFound = errors.New("historical data not found")
)

// NotFoundError reports that the provider cannot supply data for Ticker.
// Err is ErrProfileNotFound or ErrHistoricalNotFound.
type NotFoundError struct {
	Ticker string
	Err    error
}

func (e *NotFoundError) Error() string {
	if errors.Is(e.Err, ErrHistoricalNotFound) {
		return fmt.Sprintf("Could not retrieve historical data for %s.", e.Ticker)
	}
	return fmt.Sprintf("Could not retrieve profile for %s.", e.Ticker)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// UpstreamError wraps any other failure met while talking to the provider.
type UpstreamError struct {
	Op  string // overview, daily series or normalize
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *UpstreamError) Unwrap() error { return e.Err }

// Outcome is the terminal state of a lookup.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeNotFound
	OutcomeServerError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "server_error"
	}
}

// Classify maps an error returned by Lookup to its outcome.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return OutcomeNotFound
	}
	return OutcomeServerError
}
