package emulator

import (
	"errors"

	"github.com/ezrec/pineapple/translate"
)

var f = translate.From

var (
	ErrImageSize = errors.New(f("image is not a whole number of words"))
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     uint32
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d (pc 0x%x) %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
