package store

import (
	"fmt"

	"github.com/foldnote/foldnote-server/internal/domain"
)

var entityTables = map[domain.Entity]string{
	domain.EntityUser:       "users",
	domain.EntityFolder:     "folders",
	domain.EntityNote:       "notes",
	domain.EntityTag:        "tags",
	domain.EntityNoteTag:    "note_tags",
	domain.EntityAttachment: "attachments",
}

// TableFor returns the table that stores entity.
func TableFor(entity domain.Entity) (string, bool) {
	t, ok := entityTables[entity]
	return t, ok
}

// ReferenceQuery returns the COUNT query for a (child, column) pair from the
// deletion policy. The placeholder is supplied by the backend ("?" or "$1").
// Identifiers only ever come from the policy table, never from callers.
func ReferenceQuery(child domain.Entity, column, placeholder string) (string, error) {
	for _, r := range domain.DeletionRules() {
		if r.Child != child || r.Column != column {
			continue
		}
		table, ok := TableFor(child)
		if !ok {
			break
		}
		return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s", table, column, placeholder), nil
	}
	return "", fmt.Errorf("no deletion rule references %s.%s", child, column)
}
