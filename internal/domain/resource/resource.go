package resource

import "roomstay-admin/internal/pkg/errs"

var ErrUnknownKind = errs.New("unknown resource kind")

// Kind identifies one of the four record categories managed by the
// admin surface.
type Kind string

const (
	KindUser     Kind = "user"
	KindRoom     Kind = "room"
	KindLocation Kind = "location"
	KindBooking  Kind = "booking"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindUser, KindRoom, KindLocation, KindBooking:
		return Kind(s), nil
	}
	return "", errs.Mark(errs.Newf("resource kind %q", s), ErrUnknownKind)
}

func (k Kind) String() string {
	return string(k)
}

// Record is the behavior every managed record shares: an upstream (or
// locally assigned) integer id, the string fields keyword search runs
// over, and named-field access for exact filters.
type Record interface {
	RecordID() int64
	SearchText() []string
	FilterField(name string) (string, bool)
}

// Mutable records can be validated before submission and re-stamped
// with a new id, which the mutation layer needs when it synthesizes a
// locally-owned copy.
type Mutable[T any] interface {
	Record
	WithID(id int64) T
	Validate() error
}
