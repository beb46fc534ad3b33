package services

import "visitas/internal/models"

// EntryAction enumerates the mutations the ownership policy covers.
type EntryAction int

const (
	ActionUpdateEntry EntryAction = iota
	ActionDeleteEntry
)

// CanMutateEntry decides whether an actor may modify a visitor entry.
// Admins may modify anything; operators only entries they recorded.
func CanMutateEntry(role string, actorID, ownerID uint, _ EntryAction) bool {
	if role == models.RoleAdmin {
		return true
	}
	return actorID != 0 && actorID == ownerID
}
