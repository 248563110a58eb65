package event

import "errors"

// Kind classifies a fault so the caller can pick the right message.
type Kind int

const (
	// KindUnknown is any error that is not an *Error.
	KindUnknown Kind = iota
	// KindUsage is a bad day, month, year or field argument.
	KindUsage
	// KindIndex is a delete position outside the list.
	KindIndex
	// KindExpired is a date that is not after today.
	KindExpired
	// KindInvalidDate is a day that does not exist in its month.
	KindInvalidDate
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindIndex:
		return "index"
	case KindExpired:
		return "expired"
	case KindInvalidDate:
		return "invalid-date"
	default:
		return "unknown"
	}
}

// Error is a classified fault.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsUsage reports whether err is a fault in the caller's input: a bad date
// part or an out-of-range index.
func IsUsage(err error) bool {
	switch KindOf(err) {
	case KindUsage, KindIndex:
		return true
	}
	return false
}
