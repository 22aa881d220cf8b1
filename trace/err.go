package trace

import (
	"errors"

	"github.com/ezrec/pineapple/translate"
)

var f = translate.From

var (
	ErrEmpty = errors.New(f("trace empty"))
)

// ErrFile locates a trace file error.
type ErrFile struct {
	Path string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}
