package domain

import "fmt"

// UpstreamFetchError wraps a record store failure with the store's own
// diagnostic text. Inside the batch loop it is scoped to a single recipient;
// during the initial staff listing it aborts the whole run.
type UpstreamFetchError struct {
	Op  string
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("record store: %s: %v", e.Op, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// DispatchError is a messaging API failure, either at the transport level or
// a semantic rejection (transport success with a false acknowledgement).
type DispatchError struct {
	Reason string
	Err    error
}

func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dispatch: %s: %v", e.Reason, e.Err)
	}
	return "dispatch: " + e.Reason
}

func (e *DispatchError) Unwrap() error { return e.Err }
