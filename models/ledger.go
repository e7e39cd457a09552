package models

import "maps"

// LedgerEntry is what a client group has been told about one client:
// the last mutation id reported and the CVR version of the pull that
// reported it.
type LedgerEntry struct {
	LastMutationID int64 `json:"last_mutation_id"`
	SyncSequence   int64 `json:"sync_sequence"`
}

// MutationLedger maps client ids to the [LedgerEntry] last reported to the
// owning client group. The recorded mutation id never decreases; all
// writes go through [MutationLedger.Advance].
type MutationLedger struct {
	entries map[string]LedgerEntry
	changed map[string]struct{}
}

// NewMutationLedger builds a ledger from persisted entries. The ledger
// starts with no pending changes.
func NewMutationLedger(entries map[string]LedgerEntry) MutationLedger {
	l := MutationLedger{entries: make(map[string]LedgerEntry, len(entries))}
	maps.Copy(l.entries, entries)
	return l
}

// Get returns the entry recorded for clientID.
func (l *MutationLedger) Get(clientID string) (LedgerEntry, bool) {
	e, ok := l.entries[clientID]
	return e, ok
}

// Advance records that lastMutationID was reported to the group at CVR
// version syncSequence. It refuses to move the mutation id backwards and
// reports whether the entry was changed.
func (l *MutationLedger) Advance(clientID string, lastMutationID, syncSequence int64) bool {
	current, ok := l.entries[clientID]
	if ok && lastMutationID < current.LastMutationID {
		return false
	}

	next := LedgerEntry{LastMutationID: lastMutationID, SyncSequence: syncSequence}
	if ok && current == next {
		return false
	}

	if l.entries == nil {
		l.entries = make(map[string]LedgerEntry)
	}
	if l.changed == nil {
		l.changed = make(map[string]struct{})
	}

	l.entries[clientID] = next
	l.changed[clientID] = struct{}{}
	return true
}

// Changed returns the entries modified since the ledger was loaded.
func (l *MutationLedger) Changed() map[string]LedgerEntry {
	out := make(map[string]LedgerEntry, len(l.changed))
	for clientID := range l.changed {
		out[clientID] = l.entries[clientID]
	}
	return out
}
