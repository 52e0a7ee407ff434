// Package exception holds the sentinel errors of the engine. They are
// plain errors.New values so that errors.Is finds them through
// github.com/yanun0323/errors wrapping.
package exception

import "errors"

// General errors
var (
	ErrInvalidArgument = errors.New("invalid argument")
)
