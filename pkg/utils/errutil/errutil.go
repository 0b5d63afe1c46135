package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/utils/logging"
)

// Report sends the error to Sentry when error reporting has been initialized.
// A no-op otherwise.
func Report(err error) {
	if err == nil {
		return
	}
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.CaptureException(err)
}

// Handle logs the error with a message and returns it unmodified.
// This function ensures that all errors are properly logged with their
// goerr context before crossing a layer boundary.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	Report(err)
	return err
}

// HandleHTTP logs the error and writes an HTTP error response.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	if statusCode >= http.StatusInternalServerError {
		Report(err)
	}
	http.Error(w, err.Error(), statusCode)
}
