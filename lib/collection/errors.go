package collection

import "fmt"

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCIndexOutOfRange:
		errorCode = "IndexOutOfRange"
	case RetCEmpty:
		errorCode = "Empty"
	case RetCUnsupportedOperation:
		errorCode = "UnsupportedOperation"
	case RetCIllegalState:
		errorCode = "IllegalState"
	case RetCInvalidArgument:
		errorCode = "InvalidArgument"
	case RetCNoSuchElement:
		errorCode = "NoSuchElement"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("CollectionError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new collection Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Operation executed successfully.
	RetCIndexOutOfRange                     // 1: Index outside [0, size).
	RetCEmpty                               // 2: First/last/remove operation on an empty container.
	RetCUnsupportedOperation                // 3: Mutation attempted on a read-only or order-constrained view.
	RetCIllegalState                        // 4: Iterator Remove without a prior Next, or called twice.
	RetCInvalidArgument                     // 5: Key outside a sub-view's declared range on write.
	RetCNoSuchElement                       // 6: Iterator Next past the end.
)

// --------------------------------------------------------------------------
// Error Constructors (shared by all engine and view implementations)
// --------------------------------------------------------------------------

// IndexError reports an index outside [0, size).
func IndexError(index, size int) *Error {
	return NewError(RetCIndexOutOfRange, fmt.Sprintf("index: %d, size: %d", index, size))
}

// EmptyError reports a first/last/remove operation on an empty container.
func EmptyError(op string) *Error {
	return NewError(RetCEmpty, fmt.Sprintf("%s on empty container", op))
}

// UnsupportedError reports a mutation on a view that does not allow it.
func UnsupportedError(op string) *Error {
	return NewError(RetCUnsupportedOperation, fmt.Sprintf("%s is not supported by this view", op))
}

// IllegalStateError reports an iterator protocol violation.
func IllegalStateError(msg string) *Error {
	return NewError(RetCIllegalState, msg)
}

// ArgumentError reports a write outside a sub-view's declared range.
func ArgumentError(msg string) *Error {
	return NewError(RetCInvalidArgument, msg)
}

// NoSuchElementError reports an iterator advanced past the end.
func NoSuchElementError() *Error {
	return NewError(RetCNoSuchElement, "iteration has no more elements")
}
