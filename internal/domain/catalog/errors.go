package catalog

import "errors"

var (
	ErrInvalidRow    = errors.New("invalid row")
	ErrInvalidTask   = errors.New("invalid task")
	ErrUnknownField  = errors.New("unknown attribute field")
	ErrUnknownSource = errors.New("unknown task source")
	ErrTaskNotFound  = errors.New("task not found")
	ErrRowNotFound   = errors.New("row not found")
	ErrFieldLocked   = errors.New("field is not editable for this task source")
)
