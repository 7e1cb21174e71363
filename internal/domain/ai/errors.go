package ai

import "errors"

var (
	ErrEmptyAnswer   = errors.New("ai answer is empty")
	ErrNoJSONObject  = errors.New("ai answer contains no json object")
	ErrEmptyQuestion = errors.New("question is required")
)
