package memory

import (
	"errors"

	"github.com/ezrec/pineapple/translate"
)

var f = translate.From

var (
	ErrReserved = errors.New(f("reserved address"))
	ErrSpecial  = errors.New(f("special register unimplemented"))
	ErrBoundary = errors.New(f("access crosses region boundary"))
	ErrRange    = errors.New(f("range not within one region"))
	ErrSize     = errors.New(f("access size invalid"))
)

// ErrFault is returned for an access outside RAM or Video RAM.
type ErrFault struct {
	Addr   uint32
	Size   int
	Write  bool
	Region Region
	Err    error
}

func (err *ErrFault) Error() string {
	access := "read"
	if err.Write {
		access = "write"
	}
	return f("%v fault at 0x%08x (%d bytes, %v) %v", access, err.Addr, err.Size, err.Region, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrDump is returned when a dump range is not within one addressable
// region.
type ErrDump struct {
	Start  uint32
	Stop   uint32
	Region Region // Region holding Start.
}

func (err *ErrDump) Error() string {
	return f("dump 0x%08x-0x%08x in %v: %v", err.Start, err.Stop, err.Region, ErrRange)
}

func (err *ErrDump) Unwrap() error {
	return ErrRange
}
