package diagnostics

import "fmt"

// Kind classifies a fatal error raised by the core, per spec §7. Every
// value here is surfaced to the user with a short message and a Location;
// there is no recovery path. The one non-fatal case, a runtime read of a
// variable that was never written, has no Kind: the VM yields 0 and, in
// verbose mode, prints a warning instead of returning an Error. A
// reference to an undeclared variable at load time is a fatal Undefined.
type Kind string

const (
	MalformedBinary Kind = "MalformedBinary"
	SyntaxError     Kind = "SyntaxError"
	MissingSection  Kind = "MissingSection"
	DuplicateName   Kind = "DuplicateName"
	InvalidName     Kind = "InvalidName"
	Overflow        Kind = "Overflow"
	Undefined       Kind = "Undefined"
	UnresolvedLabel Kind = "UnresolvedLabel"
	UninitRegister  Kind = "UninitRegister"
	StackUnderflow  Kind = "StackUnderflow"
	DivByZero       Kind = "DivByZero"
	InvalidTarget   Kind = "InvalidTarget"
)

// Error is the error type the core packages return for every kind in the
// taxonomy above. It pairs a Kind with the Location it was detected at and
// a human-readable message. Errors outside the taxonomy (file-system
// errors, an unrecognized file extension, an out-of-range operand at
// encode time, I/O errors while reading VM input) are plain errors.
type Error struct {
	Kind     Kind
	Location Location
	Message  string
}

// New builds an *Error. message should not repeat the kind or location;
// both are rendered by Error().
func New(kind Kind, loc Location, format string, args ...any) *Error {
	return &Error{Kind: kind, Location: loc, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	loc := e.Location.String()
	if loc == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, loc, e.Message)
}
