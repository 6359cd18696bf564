package employee

import "errors"

var (
	ErrInvalidID         = errors.New("employee: invalid id")
	ErrInvalidEmployeeID = errors.New("employee: invalid employee id")
	ErrInvalidFullName   = errors.New("employee: invalid full name")
	ErrInvalidEmail      = errors.New("employee: invalid email")
	ErrInvalidDepartment = errors.New("employee: invalid department")
)
