package oplog

import "time"

// MaxParamsLength bounds the stored request parameters.
const MaxParamsLength = 1000

type OperationLog struct {
	ID          int64
	RequestID   *string
	Username    *string
	Operation   string
	Method      string
	Params      *string
	IP          *string
	StatusCode  int
	ExecuteTime int64 // milliseconds
	CreatedAt   time.Time
}

// TruncateParams cuts params to MaxParamsLength runes.
func TruncateParams(params string) string {
	r := []rune(params)
	if len(r) <= MaxParamsLength {
		return params
	}
	return string(r[:MaxParamsLength])
}
