package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Statistics(ctx context.Context, req StatisticsRequest) (StatisticsResponse, error)

	// MarkAbsentEmployees records ABSENCE for today once the cut-off hour has passed.
	MarkAbsentEmployees(ctx context.Context) (int64, error)
}
