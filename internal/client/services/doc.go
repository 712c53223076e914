// Package services contains the application services of the journal client.
//
// Services sit between the CLI and the repositories. They assign identities
// and timestamps, apply the injected capabilities (encryption of medication
// notes, report generation) and tell a ChangeNotifier after every mutation
// so the sync coordinator can schedule a drain. Repositories stay free of
// any of that.
package services

import "github.com/dmitrijs2005/distincto/internal/client/models"

// ChangeNotifier is told about every journal or food mutation.
// syncer.Coordinator implements it.
type ChangeNotifier interface {
	Changed(kind models.ChangeKind)
}

type noopNotifier struct{}

func (noopNotifier) Changed(models.ChangeKind) {}

func notifierOrNoop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
