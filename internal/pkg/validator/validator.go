package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidMonth checks a "YYYY-MM" month string.
func IsValidMonth(month string) (time.Time, bool) {
	m, err := time.Parse("2006-01", month)
	return m, err == nil
}

// Phone number validation: optional leading +, then 7-15 digits.
// Spaces and dashes are ignored.
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.TrimPrefix(phone, "+")

	if len(phone) < 7 || len(phone) > 15 {
		return false
	}
	return IsNumeric(phone)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// Username validation: 3-50 chars, A-Z, a-z, 0-9, ., _, -
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)

func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// Itoa converts an integer to a string.
func Itoa(i int) string {
	return strconv.Itoa(i)
}

// IsValidDateTime checks if a string is a valid timestamp.
// Accepts RFC3339 ("2024-01-15T10:30:00+08:00") and the
// space separated "2024-01-15 10:30:00" form used by the admin console,
// which is read as UTC.
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	return IsValidDateTimeIn(dateTimeStr, time.UTC)
}

// IsValidDateTimeIn is IsValidDateTime with the zone-less form read in loc.
func IsValidDateTimeIn(dateTimeStr string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}

	t, err := time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.ParseInLocation("2006-01-02 15:04:05", dateTimeStr, loc)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

// ValidatePagination normalises page/limit in place and reports violations.
// Page defaults to 1, limit defaults to 20 and must not exceed 100.
func ValidatePagination(page, limit *int) ValidationErrors {
	var errs ValidationErrors

	if *page < 0 {
		errs = append(errs, ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if *page == 0 {
		*page = 1
	}

	if *limit < 0 {
		errs = append(errs, ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if *limit == 0 {
		*limit = 20
	}
	if *limit > 100 {
		errs = append(errs, ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	return errs
}

// ValidateSort checks sortBy against allowed fields and normalises
// sortOrder, applying the given defaults when empty.
func ValidateSort(sortBy, sortOrder *string, allowed []string, defaultBy, defaultOrder string) ValidationErrors {
	var errs ValidationErrors

	if *sortBy != "" {
		if !IsInSlice(*sortBy, allowed) {
			errs = append(errs, ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: " + strings.Join(allowed, ", "),
			})
		}
	} else {
		*sortBy = defaultBy
	}

	if *sortOrder != "" {
		lower := strings.ToLower(*sortOrder)
		if lower != "asc" && lower != "desc" {
			errs = append(errs, ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		} else {
			*sortOrder = lower
		}
	} else {
		*sortOrder = defaultOrder
	}

	return errs
}
