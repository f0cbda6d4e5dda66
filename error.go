package thegrep

import "errors"

// ErrInvalidConfig indicates an invalid Config was passed to CompileWithConfig.
var ErrInvalidConfig = errors.New("invalid configuration")
