package session

import (
	"errors"
	"fmt"
)

// Provisioning steps, in the order they run.
const (
	StepDomains = "domains"
	StepAccount = "account"
	StepToken   = "token"
	StepPersist = "persist"
)

// ErrNoDomains is wrapped when the domain list is empty.
var ErrNoDomains = errors.New("no mail domains available")

// ProvisioningError reports a failed session creation attempt. It is
// never retried automatically.
type ProvisioningError struct {
	Step string
	Err  error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning failed at %s: %v", e.Step, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// IsProvisioningError reports whether err (or any error in its chain) is
// a ProvisioningError.
func IsProvisioningError(err error) bool {
	var pe *ProvisioningError
	return errors.As(err, &pe)
}
