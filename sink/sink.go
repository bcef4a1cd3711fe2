// Package sink delivers finished EPL2 streams to a printer.
//
// A Sink makes one synchronous attempt per call and never retries. Falling
// back to a file when no printer is reachable is left to the caller.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"syscall"
)

// Sink sends a complete stream to target.
type Sink interface {
	Send(ctx context.Context, target string, data []byte) error
}

// Kind classifies a SendError.
type Kind int

const (
	NotFound Kind = iota + 1
	AccessDenied
	IOFailure
	PartialWrite
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case AccessDenied:
		return "access denied"
	case IOFailure:
		return "i/o failure"
	case PartialWrite:
		return "partial write"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels matching SendError kinds with errors.Is.
var (
	ErrNotFound     = errors.New("sink: printer not found")
	ErrAccessDenied = errors.New("sink: access denied")
	ErrIOFailure    = errors.New("sink: i/o failure")
	ErrPartialWrite = errors.New("sink: partial write")
)

// SendError describes a failed delivery.
type SendError struct {
	Kind   Kind
	Target string
	// Written and Total are byte counts, set for PartialWrite.
	Written int
	Total   int
	Err     error
}

func (e *SendError) Error() string {
	msg := "sink: " + e.Kind.String() + ": " + e.Target
	if e.Kind == PartialWrite {
		msg += fmt.Sprintf(" (%d of %d bytes)", e.Written, e.Total)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SendError) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *SendError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrAccessDenied:
		return e.Kind == AccessDenied
	case ErrIOFailure:
		return e.Kind == IOFailure
	case ErrPartialWrite:
		return e.Kind == PartialWrite
	}
	return false
}

// classify wraps err as a SendError.
func classify(target string, err error) *SendError {
	var dnsErr *net.DNSError
	kind := IOFailure
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.ENXIO),
		errors.As(err, &dnsErr) && dnsErr.IsNotFound:
		kind = NotFound
	case errors.Is(err, fs.ErrPermission):
		kind = AccessDenied
	}
	return &SendError{Kind: kind, Target: target, Err: err}
}

// checkWrite turns the result of a single Write into a SendError.
func checkWrite(target string, n, total int, err error) error {
	if n < total && n > 0 {
		return &SendError{Kind: PartialWrite, Target: target, Written: n, Total: total, Err: err}
	}
	if err != nil {
		return classify(target, err)
	}
	if n < total {
		return &SendError{Kind: PartialWrite, Target: target, Written: n, Total: total}
	}
	return nil
}
