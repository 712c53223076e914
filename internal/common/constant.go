package common

// SyncTag is the tag used when asking the host for a deferred sync wake-up.
const SyncTag = "sync-data"

// AllChildren is the child name stored on reports that cover every child.
// Journal entries and food items may not use it.
const AllChildren = "all"

// CheckChildName rejects names a journal entry or food item cannot carry.
func CheckChildName(name string) error {
	switch name {
	case "":
		return ErrMissingChildName
	case AllChildren:
		return ErrReservedChildName
	}
	return nil
}
