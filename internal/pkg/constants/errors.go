package constants

import (
	"errors"
	"net/http"
)

type CodedError struct {
	code int
	msg  string
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrBadRequest       = NewCodedError("bad request", http.StatusBadRequest)
	ErrUnauthorized     = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrNotFound         = NewCodedError("not found", http.StatusNotFound)
	ErrInsufficientData = NewCodedError("insufficient data", http.StatusUnprocessableEntity)
	ErrUnsorted         = NewCodedError("rows are not sorted by date", http.StatusInternalServerError)
	ErrUpstream         = NewCodedError("upstream source failed", http.StatusBadGateway)
	ErrSchema           = NewCodedError("upstream schema mismatch", http.StatusBadGateway)

	ErrDBNotFound   = NewCodedError("not found in db", http.StatusNotFound)
	ErrCacheMiss    = errors.New("cache miss")
	ErrInvalidToken = NewCodedError("invalid auth token", http.StatusUnauthorized)
)
