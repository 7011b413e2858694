package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the domain error type carried through handlers. Status maps the
// error onto an HTTP response code.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

// Is enables errors.Is comparisons on status and message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !As(target, &t) {
		return false
	}
	return e.Message == t.Message && e.Status == t.Status
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrNotFound            = New("record not found", http.StatusNotFound)
	InActiveUserError      = errors.New("user inactive")

	// Donation flow taxonomy. Validation failures are detected before any
	// mutation; persistence failures roll the transaction back in full.
	ErrPostNotFound       = New("donation post not found", http.StatusNotFound)
	ErrAmountBelowMinimum = New("donation amount is below the minimum of 100", http.StatusBadRequest)
	ErrTargetExceeded     = New("donation exceeds the post's target amount", http.StatusBadRequest)
	ErrFrequencyExceeded  = New("donation frequency limit reached for this post", http.StatusBadRequest)
	ErrInvalidPAN         = New("pan number must be exactly 10 characters", http.StatusBadRequest)
)

// ErrorHandler is plugged into the gin-rate-limit middleware.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"errors": fmt.Sprintf("too many requests, try again in %s", time.Until(info.ResetTime).Round(time.Second)),
	})
}

// As wraps errors.As so callers don't need both packages.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Is wraps errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
