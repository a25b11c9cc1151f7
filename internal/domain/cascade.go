package domain

import (
	"context"
	"fmt"
)

// Entity names a stored entity kind.
type Entity string

// Stored entity kinds.
const (
	EntityUser       Entity = "user"
	EntityFolder     Entity = "folder"
	EntityNote       Entity = "note"
	EntityTag        Entity = "tag"
	EntityNoteTag    Entity = "note_tag"
	EntityAttachment Entity = "attachment"
)

// Action is what happens to a dependent row when its referent is deleted.
type Action string

const (
	// ActionCascade deletes the dependent row.
	ActionCascade Action = "cascade"
	// ActionSetNull clears the referencing column and keeps the row.
	ActionSetNull Action = "set_null"
	// ActionDangling leaves the referencing column untouched.
	ActionDangling Action = "dangling"
)

// DeletionRule describes how deleting a Parent affects Child rows that
// reference it through Column.
type DeletionRule struct {
	Parent Entity
	Child  Entity
	Column string
	Action Action
}

// deletionRules is the complete deletion policy. Both storage backends
// declare matching ON DELETE clauses; parent_folder_id has no foreign key.
var deletionRules = []DeletionRule{
	{Parent: EntityUser, Child: EntityFolder, Column: "user_id", Action: ActionCascade},
	{Parent: EntityUser, Child: EntityNote, Column: "user_id", Action: ActionCascade},
	{Parent: EntityUser, Child: EntityTag, Column: "user_id", Action: ActionCascade},
	{Parent: EntityFolder, Child: EntityNote, Column: "folder_id", Action: ActionSetNull},
	{Parent: EntityFolder, Child: EntityFolder, Column: "parent_folder_id", Action: ActionDangling},
	{Parent: EntityNote, Child: EntityNoteTag, Column: "note_id", Action: ActionCascade},
	{Parent: EntityNote, Child: EntityAttachment, Column: "note_id", Action: ActionCascade},
	{Parent: EntityTag, Child: EntityNoteTag, Column: "tag_id", Action: ActionCascade},
}

// DeletionRules returns a copy of the full policy table.
func DeletionRules() []DeletionRule {
	out := make([]DeletionRule, len(deletionRules))
	copy(out, deletionRules)
	return out
}

// RulesFor returns the rules triggered by deleting an entity of kind parent.
func RulesFor(parent Entity) []DeletionRule {
	var out []DeletionRule
	for _, r := range deletionRules {
		if r.Parent == parent {
			out = append(out, r)
		}
	}
	return out
}

// DeletionEffect is the number of Child rows one rule touches.
type DeletionEffect struct {
	Rule  DeletionRule
	Count int
}

// DeletionImpact summarizes what deleting one row would do to its direct
// dependents. Transitive cascades (user -> note -> attachment) are not
// expanded.
type DeletionImpact struct {
	Entity  Entity
	ID      string
	Effects []DeletionEffect
}

// LogArgs flattens the impact into slog key/value pairs such as
// "note.folder_id.set_null", 3.
func (d DeletionImpact) LogArgs() []any {
	args := make([]any, 0, len(d.Effects)*2)
	for _, e := range d.Effects {
		key := fmt.Sprintf("%s.%s.%s", e.Rule.Child, e.Rule.Column, e.Rule.Action)
		args = append(args, key, e.Count)
	}
	return args
}

// DependentCounter counts rows of child whose column equals id.
type DependentCounter interface {
	CountReferences(ctx context.Context, child Entity, column, id string) (int, error)
}

// ComputeDeletionImpact evaluates every rule for parent against counter.
func ComputeDeletionImpact(ctx context.Context, counter DependentCounter, parent Entity, id string) (DeletionImpact, error) {
	impact := DeletionImpact{Entity: parent, ID: id}
	for _, rule := range RulesFor(parent) {
		select {
		case <-ctx.Done():
			return impact, ctx.Err()
		default:
		}

		n, err := counter.CountReferences(ctx, rule.Child, rule.Column, id)
		if err != nil {
			return impact, fmt.Errorf("count %s.%s: %w", rule.Child, rule.Column, err)
		}
		impact.Effects = append(impact.Effects, DeletionEffect{Rule: rule, Count: n})
	}
	return impact, nil
}
