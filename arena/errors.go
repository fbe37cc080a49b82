package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroSize indicates an allocation request for zero or negative bytes.
	ErrZeroSize = errors.New("arena: cannot allocate 0 bytes")

	// ErrNoSpace indicates that no free chunk large enough was found.
	ErrNoSpace = errors.New("arena: no free chunk large enough")

	// ErrBadPointer indicates a pointer passed to Free (or an offset passed
	// to At/OffsetOf) that does not identify the payload of an allocated
	// chunk: out of bounds, misaligned, or backed by a corrupt header.
	ErrBadPointer = errors.New("arena: inappropriate pointer")

	// ErrDoubleFree indicates a Free of a chunk that is already free.
	ErrDoubleFree = errors.New("arena: double free")

	// ErrBadCapacity indicates a configured capacity too small or misaligned
	// for even a single chunk.
	ErrBadCapacity = errors.New("arena: invalid capacity")
)

// Fault carries an unrecoverable integrity violation detected during Free.
// A Fault means the caller has already broken the allocation contract, so
// the arena's state can no longer be trusted; the instance performs no
// repair and continuing to use it is undefined. Program boundaries should
// map a Fault to termination with a distinct status (see pkg/malloc).
type Fault struct {
	Kind   error  // ErrBadPointer or ErrDoubleFree
	Offset int    // arena-relative offset of the suspect pointer, -1 if outside
	Detail string // what the validation found
}

func (f *Fault) Error() string {
	if f.Offset < 0 {
		return fmt.Sprintf("%v: %s", f.Kind, f.Detail)
	}
	return fmt.Sprintf("%v: %s (offset %d)", f.Kind, f.Detail, f.Offset)
}

// Unwrap exposes the taxonomy sentinel so errors.Is(err, ErrBadPointer)
// and errors.Is(err, ErrDoubleFree) work through a Fault.
func (f *Fault) Unwrap() error {
	return f.Kind
}

func badPointer(off int, detail string) *Fault {
	return &Fault{Kind: ErrBadPointer, Offset: off, Detail: detail}
}
