package transcription

import (
	"errors"
	"fmt"
)

var (
	ErrUploadFailed = errors.New("transcription upload failed")
	ErrSubmitFailed = errors.New("transcription submit failed")
	ErrJobFailed    = errors.New("transcription job failed")
	ErrTimedOut     = errors.New("transcription timed out")
)

// ServiceError carries the detail the service reported for a failed phase.
// It unwraps to the phase sentinel.
type ServiceError struct {
	Phase  error
	Status int // HTTP status, 0 for a failed job
	Detail string
}

func (e *ServiceError) Error() string {
	switch {
	case e.Detail != "" && e.Status != 0:
		return fmt.Sprintf("%v: %d: %s", e.Phase, e.Status, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("%v: %s", e.Phase, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("%v: status %d", e.Phase, e.Status)
	}
	return e.Phase.Error()
}

func (e *ServiceError) Unwrap() error { return e.Phase }
