package query

import "fmt"

// QueryError wraps a failure that happened after a connection was
// established: bad SQL, constraint problems, scan errors or timeouts.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("running query: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
