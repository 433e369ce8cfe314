package graph

import "fmt"

// TransportError indicates the graph API could not be reached or returned an
// HTTP-level failure. It is never retried here; callers decide whether to
// retry the whole operation.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error in %s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError indicates a well-formed HTTP response whose body lacks the
// shape the client expects: undecodable JSON, GraphQL errors, or a paginated
// connection missing its pageInfo.
type ProtocolError struct {
	Operation string
	Reason    string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error in %s: %s", e.Operation, e.Reason)
}
