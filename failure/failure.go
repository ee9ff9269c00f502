package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by cause rather than by the concrete error type that produced it.
type Kind uint8

const (
	// KindUnknown is reported for errors that did not originate in goSecurity.
	KindUnknown Kind = iota
	// KindConfiguration marks a missing or invalid setting: key, iv, signing material, cipher method.
	KindConfiguration
	// KindCryptographic marks an engine rejection: bad key/iv length, corrupt ciphertext, bad signature.
	KindCryptographic
	// KindTokenValidity marks a token that is expired, not yet valid, absent, or malformed.
	KindTokenValidity
	// KindIO marks key material that could not be read or written.
	KindIO
)

var (
	// ErrConfiguration matches every error of kind KindConfiguration.
	ErrConfiguration = errors.New("configuration error")
	// ErrCryptographic matches every error of kind KindCryptographic.
	ErrCryptographic = errors.New("cryptographic failure")
	// ErrTokenValidity matches every error of kind KindTokenValidity.
	ErrTokenValidity = errors.New("token validity error")
	// ErrIO matches every error of kind KindIO.
	ErrIO = errors.New("io failure")
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindCryptographic:
		return "cryptographic"
	case KindTokenValidity:
		return "token_validity"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindCryptographic:
		return ErrCryptographic
	case KindTokenValidity:
		return ErrTokenValidity
	case KindIO:
		return ErrIO
	default:
		return nil
	}
}

// Error is a classified failure. Op names the operation ("aes.encode", "rsa.init"),
// Message is safe to show to callers, and Err is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// New returns a classified error without an underlying cause.
func New(kind Kind, op, message string) error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf is New with a formatted message.
func Newf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err yields nil. An err that is already classified keeps its
// kind and gains no second layer.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Wrapf classifies err with an additional message.
func Wrapf(kind Kind, op string, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Message returns the caller-facing message of err: the classified message when
// present, otherwise err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return err.Error()
}
