package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Fatal error classes. Operations wrap them in *OpError; match with errors.Is.
var (
	// ErrType reports an element lacking the capability an operation needs,
	// such as a string operation applied to a number.
	ErrType = errors.New("type mismatch")

	// ErrRange reports a positional access that requires a value which does
	// not exist.
	ErrRange = errors.New("position out of range")

	// ErrConversion reports text that cannot be parsed as a number.
	ErrConversion = errors.New("conversion failed")

	// ErrAttribute reports an element without the requested field.
	ErrAttribute = errors.New("no such attribute")

	// ErrRagged reports rows of unequal length where rectangular input is
	// required.
	ErrRagged = errors.New("rows have unequal length")

	// ErrPattern reports an invalid regular expression.
	ErrPattern = errors.New("invalid pattern")

	// ErrNotComparable reports elements that have no natural order relative
	// to each other.
	ErrNotComparable = fmt.Errorf("%w: values are not comparable", ErrType)
)

// OpError records the operation and element index at which a failure
// happened. Index is -1 when the failure is not tied to one element.
type OpError struct {
	Op    string
	Index int
	Err   error
}

func (e *OpError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: element %d: %v", e.Op, e.Index, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Errorf builds an *OpError whose cause wraps class with a formatted detail.
func Errorf(op string, index int, class error, format string, args ...any) *OpError {
	return &OpError{
		Op:    op,
		Index: index,
		Err:   fmt.Errorf("%w: %s", class, fmt.Sprintf(format, args...)),
	}
}

// ErrPanic is a panic raised by a caller-supplied function and recovered by
// the pipeline. Stack lists the frames outside this module, innermost first.
type ErrPanic struct {
	Value any
	Stack string
}

func (e ErrPanic) Error() string {
	if e.Stack == "" {
		return fmt.Sprintf("panic: %v", e.Value)
	}
	return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value when it is an error.
func (e ErrPanic) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// NewPanicError builds an ErrPanic for a value returned by recover. It must
// be called from the deferred function that recovered.
func NewPanicError(recovered any) ErrPanic {
	// runtime.Callers, callerStack, NewPanicError and the deferred function.
	return ErrPanic{Value: recovered, Stack: callerStack(4)}
}

const modulePrefix = "github.com/lguimbarda/min-chain/chain"

// callerStack renders up to 32 frames above skip. Frames of this module are
// left out unless they belong to a test file, and so are runtime frames.
func callerStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for more := n > 0; more; {
		var f runtime.Frame
		f, more = frames.Next()
		if !userFrame(f) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s\n\t%s:%d", f.Function, f.File, f.Line)
	}
	return sb.String()
}

func userFrame(f runtime.Frame) bool {
	switch {
	case strings.HasPrefix(f.Function, "runtime."):
		return false
	case strings.HasPrefix(f.Function, modulePrefix):
		return strings.HasSuffix(f.File, "_test.go")
	}
	return true
}
