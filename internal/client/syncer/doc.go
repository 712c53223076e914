// Package syncer tracks connectivity and reconciles locally written records
// with the remote side.
//
// # Overview
//
// Coordinator is a small state machine (Offline, OnlineIdle, OnlineSyncing)
// fed through an inbox. The platform (here, the CLI's connectivity watcher)
// reports Online and Offline; services report Changed after each mutation.
// Run consumes the inbox on one goroutine, so transitions are applied in
// the order they were signalled.
//
// A drain gathers every unsynced journal entry and food item, asks the
// Remote to acknowledge each one and flips the synced flag of the records it
// acknowledged. A drain never returns an error: records that could not be
// reconciled simply stay unsynced for the next attempt. The aggregate
// models.SyncStatus is persisted after every transition and drain.
//
// The only Remote today is NoopRemote, which acknowledges everything.
package syncer
