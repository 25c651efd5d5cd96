package service

import (
	"errors"
	"strings"

	"github.com/superfruitcenter/fruitmart/internal/models"
)

// substrings indicating a transient network-class failure
var transientErrHints = []string{
	"timeout",
	"timed out",
	"deadline exceeded",
	"connection reset",
	"connection refused",
	"broken pipe",
	"network",
	"unavailable",
	"temporary",
	"fetch failed",
}

// isRetryable classifies a store error as transient. Server-class
// failures (5xx) and network-class failures are retryable, everything
// else, validation errors included, is not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *models.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500 && statusErr.Code <= 599
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range transientErrHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}

	return false
}
