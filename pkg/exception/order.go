package exception

import "errors"

var (
	ErrInvalidSide = errors.New("order: invalid side")
)
