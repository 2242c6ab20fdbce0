package cms

import (
	"errors"
	"fmt"
)

// ErrNoResult is returned by Fetch when the query evaluates to null,
// e.g. a single-document lookup that matched nothing.
var ErrNoResult = errors.New("cms: query returned no result")

// QueryError is the single failure kind of the CMS client. It covers
// transport failures, non-2xx responses and undecodable payloads alike.
type QueryError struct {
	Query       string
	StatusCode  int    // 0 when no response was received
	Type        string // error type reported by the CMS, if any
	Description string
	Err         error
}

func (e *QueryError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Description != "":
		return fmt.Sprintf("cms: query failed (%d %s): %s", e.StatusCode, e.Type, e.Description)
	case e.StatusCode != 0:
		return fmt.Sprintf("cms: query failed with status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("cms: query failed: %v", e.Err)
	default:
		return "cms: query failed"
	}
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError reports whether err is or wraps a *QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
