package models

// SyncStatus is the process-wide sync bookkeeping persisted between runs.
// LastSync is in unix milliseconds, zero if a drain never completed.
type SyncStatus struct {
	LastSync    int64 `json:"lastSync"`
	PendingSync int   `json:"pendingSync"`
	IsOnline    bool  `json:"isOnline"`
}

// PendingRecord is an unsynced journal entry or food item.
type PendingRecord struct {
	Journal *JournalEntry
	Food    *FoodItem
}

func (p PendingRecord) ID() string {
	if p.Journal != nil {
		return p.Journal.ID
	}
	if p.Food != nil {
		return p.Food.ID
	}
	return ""
}

// ChangeKind names the collection a mutation touched.
type ChangeKind string

const (
	ChangeJournal ChangeKind = "journal"
	ChangeFood    ChangeKind = "food"
)
