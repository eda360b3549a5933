package codec

import "errors"

// ErrMalformed reports input that does not follow the text format. Errors
// carry the 1-based line number.
var ErrMalformed = errors.New("codec: malformed input")
