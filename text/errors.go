package text

import (
	"errors"
	"fmt"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("text: empty font data")

// FontError reports font data that could not be parsed.
type FontError struct {
	Err error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("text: invalid font: %v", e.Err)
}

func (e *FontError) Unwrap() error {
	return e.Err
}
