package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave application not found")
	ErrLeaveAlreadyProcessed = errors.New("leave application already processed")
	ErrInvalidLeaveRange     = errors.New("end_time must be after start_time")
)
