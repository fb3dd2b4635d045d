package inbox

import (
	"errors"
	"fmt"
)

// Fetch operations.
const (
	OpList   = "list"
	OpDetail = "detail"
	OpSource = "source"
)

// FetchError reports a failed list or detail fetch. It is logged and
// otherwise swallowed: polling continues and the rendered view is kept.
type FetchError struct {
	Op        string
	MessageID string
	Err       error
}

func (e *FetchError) Error() string {
	if e.MessageID != "" {
		return fmt.Sprintf("fetch %s %s: %v", e.Op, e.MessageID, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err (or any error in its chain) is a
// FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
