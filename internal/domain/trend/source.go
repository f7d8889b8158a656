// internal/domain/trend/source.go

package trend

import (
	"context"
	"errors"
)

// ErrNoData signals that a requested window holds no records. Callers
// use it to tell "nothing to report" apart from a broken report run.
var ErrNoData = errors.New("no records in requested window")

// FetchStatus describes the outcome of one connector invocation.
type FetchStatus int

const (
	// FetchOK means the connector returned at least one record.
	FetchOK FetchStatus = iota

	// FetchEmpty means the connector ran but found nothing.
	FetchEmpty

	// FetchSkipped means the connector could not run (missing
	// credentials, network or API failure) and degraded to no records.
	FetchSkipped
)

// FetchResult is what a connector hands back. Failures are values, not
// errors: an unreachable source never aborts an ingestion run.
type FetchResult struct {
	Platform string
	Status   FetchStatus
	Reason   string // populated when Status is FetchSkipped
	Records  []Record
}

// OK wraps records from a successful fetch, collapsing to FetchEmpty
// when there are none.
func OK(platform string, records []Record) FetchResult {
	if len(records) == 0 {
		return Empty(platform)
	}
	return FetchResult{Platform: platform, Status: FetchOK, Records: records}
}

// Empty marks a fetch that ran and found nothing.
func Empty(platform string) FetchResult {
	return FetchResult{Platform: platform, Status: FetchEmpty}
}

// Skipped marks a fetch that could not run, with the reason.
func Skipped(platform, reason string) FetchResult {
	return FetchResult{Platform: platform, Status: FetchSkipped, Reason: reason}
}

// Source is implemented by each upstream connector. Fetch must not
// fail: any error is converted into a skipped result.
type Source interface {
	// Platform returns the platform tag this source produces.
	Platform() string

	// Fetch returns records for the trailing window of days, capped at
	// limit per upstream query.
	Fetch(ctx context.Context, keywords []string, days, limit int) FetchResult
}
