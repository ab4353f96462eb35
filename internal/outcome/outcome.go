// Package outcome turns raw operation results into the classified
// (ok, category, message) triple consumed by the notification surface.
// Everything here is pure: identical input always yields identical output.
package outcome

import (
	"errors"
	"strings"

	"github.com/akozyrev/userdir/internal/common"
)

// Category is the toast kind the presentation collaborator renders.
type Category string

const (
	Success Category = "success"
	Info    Category = "info"
	Warning Category = "warning"
	Error   Category = "error"
)

// Outcome is a classified operation result.
type Outcome struct {
	OK       bool
	Category Category
	Message  string
}

// Classify maps a numeric status into an Outcome. Ranges: [200,300) success,
// [300,400) info, [400,500) warning, [500,600) error; anything else is info
// when the status sits in [100,400) and error otherwise. When message is
// blank, a deterministic default for the category is used.
func Classify(status int, message string) Outcome {
	msg := strings.TrimSpace(message)

	switch {
	case status >= 200 && status < 300:
		if msg == "" {
			msg = "Action completed successfully."
		}
		return Outcome{OK: true, Category: Success, Message: msg}

	case status >= 300 && status < 400:
		if msg == "" {
			msg = "Redirect or informational response."
		}
		return Outcome{OK: true, Category: Info, Message: msg}

	case status >= 400 && status < 500:
		if msg == "" {
			msg = "Invalid request. Check the data."
		}
		return Outcome{OK: false, Category: Warning, Message: msg}

	case status >= 500 && status < 600:
		if msg == "" {
			msg = "Server error. Try again later."
		}
		return Outcome{OK: false, Category: Error, Message: msg}
	}

	ok := status >= 100 && status < 400
	cat := Error
	if ok {
		cat = Info
	}
	if msg == "" {
		if ok {
			msg = "Operation completed."
		} else {
			msg = "An unexpected error occurred."
		}
	}
	return Outcome{OK: ok, Category: cat, Message: msg}
}

// FromError maps the sentinel error taxonomy onto statuses and classifies
// the result. A nil error is a plain success; message overrides the
// category default when non-blank.
func FromError(err error, message string) Outcome {
	switch {
	case err == nil:
		return Classify(200, message)
	case errors.Is(err, common.ErrInvalidCredentials):
		return Classify(401, pick(message, "Invalid login or password."))
	case errors.Is(err, common.ErrSelfDeletion):
		return Classify(409, pick(message, "You cannot delete the account you are logged in with."))
	case errors.Is(err, common.ErrConfirmationDeclined):
		return Classify(400, pick(message, "Deletion cancelled."))
	case errors.Is(err, common.ErrorNotFound):
		return Classify(404, pick(message, "No matching account was found."))
	default:
		return Classify(500, message)
	}
}

func pick(message, fallback string) string {
	if strings.TrimSpace(message) != "" {
		return message
	}
	return fallback
}
