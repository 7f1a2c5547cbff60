package task

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrTitleRequired    = fmt.Errorf("%w: title is required", ErrInvalidInput)
	ErrCompletedNotBool = fmt.Errorf("%w: completed must be a boolean", ErrInvalidInput)
)
