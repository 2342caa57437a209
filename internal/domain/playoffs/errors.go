package playoffs

import (
	"errors"
	"fmt"
	"strings"
)

// FetchError wraps a provider failure for one season.
type FetchError struct {
	Season   int
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("fetch season %d from %s: %v", e.Season, e.Provider, e.Err)
	}
	return fmt.Sprintf("fetch season %d: %v", e.Season, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// MalformedInputError reports a raw table that lacks the columns a playoff stats table must carry.
type MalformedInputError struct {
	Season  int
	Missing []string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("season %d: raw table missing required columns [%s]", e.Season, strings.Join(e.Missing, ", "))
}

// AsMalformedInputError attempts to unwrap an error into a MalformedInputError.
func AsMalformedInputError(err error) (*MalformedInputError, bool) {
	var me *MalformedInputError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// EmptyResultWarning marks a season that cleaned successfully but kept no rows.
// It is reported alongside a valid empty record set, never instead of one.
type EmptyResultWarning struct {
	Season    int
	InputRows int
}

func (w *EmptyResultWarning) Error() string {
	return fmt.Sprintf("season %d: no qualifying records after cleaning (%d input rows)", w.Season, w.InputRows)
}

// ErrInvariant signals a record that should never have left the cleaner.
var ErrInvariant = errors.New("player-season record invariant violated")
