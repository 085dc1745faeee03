package exit

import "fmt"

// Request is an error value signalling that the process should terminate
// with a specific status code. Handlers return it through ordinary error
// paths; only the top-level boundary acts on it. A zero code is a normal
// termination request.
type Request struct {
	Code int
}

// Error implements the error interface for Request.
func (r *Request) Error() string {
	return fmt.Sprintf("exit status %d requested", r.Code)
}

// WithCode builds a termination request for the given status code.
func WithCode(code int) *Request {
	return &Request{Code: code}
}
