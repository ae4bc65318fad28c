package rowbridge

import "strconv"

// OutcomeKind identifies the terminal outcome of an invocation.
type OutcomeKind string

const (
	// OutcomeSuccess marks a completed request with a 2xx response.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeFailure marks a transport error or non-2xx response.
	OutcomeFailure OutcomeKind = "failure"
	// OutcomeTimedOut marks an invocation that exceeded its wait bound.
	OutcomeTimedOut OutcomeKind = "timed_out"
	// OutcomeCancelled marks an invocation cancelled by the caller.
	OutcomeCancelled OutcomeKind = "cancelled"
)

// FailureKind classifies a failure outcome.
type FailureKind string

const (
	// FailureTransport marks a network or protocol error before a response.
	FailureTransport FailureKind = "transport"
	// FailureHTTPStatus marks a response with a non-2xx status code.
	FailureHTTPStatus FailureKind = "http_status"
)

// Result is the tagged outcome of a single invocation.
type Result struct {
	Kind    OutcomeKind
	Status  int
	Body    []byte
	Failure FailureKind
	Detail  string
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool {
	return r.Kind == OutcomeSuccess
}

// Summary renders a short textual status for row-function return values.
func (r Result) Summary() string {
	switch r.Kind {
	case OutcomeSuccess:
		return "success status=" + strconv.Itoa(r.Status)
	case OutcomeFailure:
		if r.Failure == FailureHTTPStatus {
			return "failure status=" + strconv.Itoa(r.Status)
		}
		return "failure " + string(r.Failure)
	default:
		return string(r.Kind)
	}
}

// Response carries the status and body reported by a Poster.
type Response struct {
	Status int
	Body   []byte
}
