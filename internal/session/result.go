package session

import "fmt"

// FailureKind categorizes why a mutating operation failed.
type FailureKind string

const (
	FailureInvalidDuration FailureKind = "invalid_duration"
	FailureExternalService FailureKind = "external_service"
	FailureStore           FailureKind = "store"
	FailureNotFound        FailureKind = "not_found"
)

// Result is what every mutating operation hands back to the caller.
// Nothing past the manager boundary ever raises: a failed operation is
// a Result with OK=false, and Status() keeps the textual "Error: "
// convention clients branch on.
type Result struct {
	OK      bool
	Message string
	Kind    FailureKind
	Err     error
}

func ok(message string) Result {
	return Result{OK: true, Message: message}
}

func fail(kind FailureKind, err error) Result {
	return Result{Kind: kind, Err: err}
}

func failf(kind FailureKind, format string, args ...any) Result {
	return Result{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (r Result) Status() string {
	if r.OK {
		return r.Message
	}
	return "Error: " + r.Err.Error()
}
