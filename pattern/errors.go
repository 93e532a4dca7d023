package pattern

import "github.com/pkg/errors"

var (
	// ErrUnknownFormat is returned when the first significant line of a
	// pattern file is neither "chars" nor "coords".
	ErrUnknownFormat = errors.New("unknown pattern format")

	// ErrMissingCharSpec is returned when a chars pattern reaches its body
	// without declaring a {<dead><live>} character pair.
	ErrMissingCharSpec = errors.New("missing character spec")

	// ErrInvalidCharSpec is returned when a character spec is not exactly
	// two distinct characters in braces.
	ErrInvalidCharSpec = errors.New("invalid character spec")

	// ErrInvalidCellChar is returned when a pattern row contains a character
	// outside the declared dead/live pair.
	ErrInvalidCellChar = errors.New("invalid cell character")

	// ErrRowTooLong is returned when a pattern row exceeds the target grid's
	// column count.
	ErrRowTooLong = errors.New("pattern row too long")

	// ErrTooManyRows is returned when a chars pattern has more rows than the
	// target grid.
	ErrTooManyRows = errors.New("too many pattern rows")

	// ErrInvalidCoordinate is returned for malformed coords lines:
	// non-numeric fields, negative values, or the wrong field count.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)
