package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distincto/internal/client/services"
	"github.com/dmitrijs2005/distincto/internal/client/transcription"
	"github.com/dmitrijs2005/distincto/internal/common"
)

var (
	errUsage    = errors.New("usage")
	errNotFound = errors.New("not found")
	errLocked   = errors.New("journal is locked")
)

// userMessage turns a failure of the action named by what into a line for
// the terminal. Storage and transcription errors get a hint on what to do.
func userMessage(what string, err error) string {
	var se *transcription.ServiceError

	switch {
	case errors.Is(err, common.ErrStorageInitFailed):
		return fmt.Sprintf("%s failed: local storage could not be opened, restart the journal (%v)", what, err)
	case errors.Is(err, common.ErrStorageWriteFailed):
		return fmt.Sprintf("%s failed: could not save, nothing was changed; try again", what)
	case errors.Is(err, common.ErrStorageReadFailed):
		return fmt.Sprintf("%s failed: could not read local storage; try again", what)
	case errors.Is(err, common.ErrBlobStoreFailure):
		return fmt.Sprintf("%s failed: attachment could not be stored; try again", what)
	case errors.Is(err, services.ErrWrongPassphrase):
		return "Wrong passphrase."
	case errors.Is(err, errLocked):
		return "The journal is locked, run 'unlock' first."
	case errors.As(err, &se):
		return fmt.Sprintf("%s failed: %v", what, se)
	case errors.Is(err, transcription.ErrTimedOut):
		return fmt.Sprintf("%s failed: the service did not finish in time; the recording was kept", what)
	}
	return fmt.Sprintf("%s failed: %v", what, err)
}
