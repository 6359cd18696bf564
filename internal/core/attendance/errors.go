package attendance

import "errors"

var (
	ErrInvalidEmployeeID = errors.New("attendance: invalid employee id")
	ErrInvalidDate       = errors.New("attendance: invalid date")
	ErrInvalidStatus     = errors.New("attendance: invalid status")
)
