package services

import "sync"

var (
	moderatorMu  sync.RWMutex
	moderatorIDs = map[string]struct{}{}
)

// SetModerators replaces the moderator allow-list. Called once at startup
// from the MODERATOR_IDS configuration.
func SetModerators(ids []string) {
	moderatorMu.Lock()
	defer moderatorMu.Unlock()
	moderatorIDs = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			moderatorIDs[id] = struct{}{}
		}
	}
}

// IsModerator reports whether the user may review message reports.
func IsModerator(userID string) bool {
	moderatorMu.RLock()
	defer moderatorMu.RUnlock()
	_, ok := moderatorIDs[userID]
	return ok
}
