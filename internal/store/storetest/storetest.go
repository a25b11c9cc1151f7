// Package storetest is the behavioral contract every store.Store backend
// must satisfy. Backends call Run from their own tests.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/errors"
	"github.com/foldnote/foldnote-server/internal/store"
)

// Factory returns an empty store. It is called once per subtest and is
// responsible for cleanup.
type Factory func(t *testing.T) store.Store

// Run executes the full contract against the backend produced by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"Users", testUsers},
		{"UserUniqueness", testUserUniqueness},
		{"FolderHierarchyIsPermissive", testFolderHierarchyIsPermissive},
		{"FolderUpdate", testFolderUpdate},
		{"NoteCreateConstraints", testNoteCreateConstraints},
		{"NotePartialUpdate", testNotePartialUpdate},
		{"ListNotesFilters", testListNotesFilters},
		{"ListNotesUnknownOwner", testListNotesUnknownOwner},
		{"AddTagIsIdempotent", testAddTagIsIdempotent},
		{"AddTagConcurrent", testAddTagConcurrent},
		{"AddTagNotFound", testAddTagNotFound},
		{"RemoveAndListNoteTags", testRemoveAndListNoteTags},
		{"TagUpdate", testTagUpdate},
		{"Attachments", testAttachments},
		{"UpdateUnknownIDs", testUpdateUnknownIDs},
		{"DeleteIsIdempotent", testDeleteIsIdempotent},
		{"DeleteFolderPolicy", testDeleteFolderPolicy},
		{"DeleteNotePolicy", testDeleteNotePolicy},
		{"DeleteTagPolicy", testDeleteTagPolicy},
		{"DeleteUserPolicy", testDeleteUserPolicy},
		{"CountReferences", testCountReferences},
		{"Scenario", testScenario},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

var seq atomic.Int64

// clock hands out strictly increasing timestamps so creation order is
// observable even on fast machines.
var (
	clockMu sync.Mutex
	clockAt = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
)

func tick() time.Time {
	clockMu.Lock()
	defer clockMu.Unlock()
	clockAt = clockAt.Add(time.Millisecond)
	return clockAt
}

func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, seq.Add(1))
}

func mustUser(t *testing.T, s store.Store) *domain.User {
	t.Helper()
	n := seq.Add(1)
	now := tick()
	u := &domain.User{
		ID:        nextID("user"),
		Email:     fmt.Sprintf("user%d@example.com", n),
		Name:      fmt.Sprintf("User %d", n),
		GoogleID:  fmt.Sprintf("google-%d", n),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func mustFolder(t *testing.T, s store.Store, userID, name string, parent *string) *domain.Folder {
	t.Helper()
	now := tick()
	f := &domain.Folder{
		ID:             nextID("fld"),
		Name:           name,
		UserID:         userID,
		ParentFolderID: parent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, s.CreateFolder(context.Background(), f))
	return f
}

func mustNote(t *testing.T, s store.Store, userID, title string, folderID *string) *domain.Note {
	t.Helper()
	now := tick()
	n := &domain.Note{
		ID:        nextID("note"),
		Title:     title,
		Content:   "content of " + title,
		UserID:    userID,
		FolderID:  folderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateNote(context.Background(), n))
	return n
}

func mustTag(t *testing.T, s store.Store, userID, name string) *domain.Tag {
	t.Helper()
	color := "#ff0000"
	tag := &domain.Tag{
		ID:        nextID("tag"),
		Name:      name,
		UserID:    userID,
		Color:     &color,
		CreatedAt: tick(),
	}
	require.NoError(t, s.CreateTag(context.Background(), tag))
	return tag
}

func mustAttachment(t *testing.T, s store.Store, noteID string) *domain.Attachment {
	t.Helper()
	a := newAttachment(noteID)
	require.NoError(t, s.CreateAttachment(context.Background(), a))
	return a
}

func newAttachment(noteID string) *domain.Attachment {
	id := nextID("att")
	return &domain.Attachment{
		ID:               id,
		NoteID:           noteID,
		Filename:         id + ".pdf",
		OriginalFilename: "report.pdf",
		FileSize:         2048,
		MimeType:         "application/pdf",
		FilePath:         "/uploads/" + id + ".pdf",
		CreatedAt:        tick(),
	}
}

func noteIDs(notes []*domain.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	sort.Strings(out)
	return out
}

func sorted(ids ...string) []string {
	sort.Strings(ids)
	return ids
}

func ptr(s string) *string { return &s }

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Nil(t, got.AvatarURL)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	byGoogle, err := s.GetUserByGoogleID(ctx, u.GoogleID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byGoogle.ID)

	_, err = s.GetUserByGoogleID(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	updated, err := s.UpdateUser(ctx, u.ID, domain.UserPatch{AvatarURL: domain.Some("https://example.com/a.png")}, tick())
	require.NoError(t, err)
	assert.Equal(t, u.Name, updated.Name)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, "https://example.com/a.png", *updated.AvatarURL)
	assert.True(t, updated.UpdatedAt.After(u.UpdatedAt))

	cleared, err := s.UpdateUser(ctx, u.ID, domain.UserPatch{AvatarURL: domain.Null[string]()}, tick())
	require.NoError(t, err)
	assert.Nil(t, cleared.AvatarURL)
}

func testUserUniqueness(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	now := tick()

	dupEmail := &domain.User{ID: nextID("user"), Email: u.Email, Name: "x", GoogleID: "other-google", CreatedAt: now, UpdatedAt: now}
	err := s.CreateUser(ctx, dupEmail)
	assert.ErrorIs(t, err, store.ErrConstraintViolation)

	dupGoogle := &domain.User{ID: nextID("user"), Email: "other@example.com", Name: "x", GoogleID: u.GoogleID, CreatedAt: now, UpdatedAt: now}
	err = s.CreateUser(ctx, dupGoogle)
	assert.ErrorIs(t, err, store.ErrConstraintViolation)
}

func testFolderHierarchyIsPermissive(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	other := mustUser(t, s)

	root := mustFolder(t, s, u.ID, "Root", nil)
	child := mustFolder(t, s, u.ID, "Child", &root.ID)
	invalid := mustFolder(t, s, u.ID, "Invalid parent", ptr("no-such-folder"))
	foreign := mustFolder(t, s, other.ID, "Foreign child", &root.ID)

	folders, err := s.ListFolders(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, folders, 3)
	assert.Equal(t, []string{root.ID, child.ID, invalid.ID},
		[]string{folders[0].ID, folders[1].ID, folders[2].ID})
	assert.Nil(t, folders[0].ParentFolderID)
	assert.Equal(t, root.ID, *folders[1].ParentFolderID)
	assert.Equal(t, "no-such-folder", *folders[2].ParentFolderID)

	got, err := s.GetFolder(ctx, foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, *got.ParentFolderID)

	empty, err := s.ListFolders(ctx, "no-such-user")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func testFolderUpdate(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	parent := mustFolder(t, s, u.ID, "Parent", nil)
	f := mustFolder(t, s, u.ID, "Work", &parent.ID)

	renamed, err := s.UpdateFolder(ctx, f.ID, domain.FolderPatch{Name: ptr("Office")}, tick())
	require.NoError(t, err)
	assert.Equal(t, "Office", renamed.Name)
	assert.Equal(t, parent.ID, *renamed.ParentFolderID)
	assert.True(t, renamed.UpdatedAt.After(f.UpdatedAt))

	detached, err := s.UpdateFolder(ctx, f.ID, domain.FolderPatch{ParentFolderID: domain.Null[string]()}, tick())
	require.NoError(t, err)
	assert.Equal(t, "Office", detached.Name)
	assert.Nil(t, detached.ParentFolderID)

	dangling, err := s.UpdateFolder(ctx, f.ID, domain.FolderPatch{ParentFolderID: domain.Some("ghost")}, tick())
	require.NoError(t, err)
	assert.Equal(t, "ghost", *dangling.ParentFolderID)

	stored, err := s.GetFolder(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "ghost", *stored.ParentFolderID)
	assert.True(t, stored.UpdatedAt.Equal(dangling.UpdatedAt))
}

func testNoteCreateConstraints(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	now := tick()

	missingUser := &domain.Note{ID: nextID("note"), Title: "x", UserID: "no-such-user", CreatedAt: now, UpdatedAt: now}
	assert.ErrorIs(t, s.CreateNote(ctx, missingUser), store.ErrConstraintViolation)

	missingFolder := &domain.Note{ID: nextID("note"), Title: "x", UserID: u.ID, FolderID: ptr("no-such-folder"), CreatedAt: now, UpdatedAt: now}
	assert.ErrorIs(t, s.CreateNote(ctx, missingFolder), store.ErrConstraintViolation)

	missingOwner := &domain.Folder{ID: nextID("fld"), Name: "x", UserID: "no-such-user", CreatedAt: now, UpdatedAt: now}
	assert.ErrorIs(t, s.CreateFolder(ctx, missingOwner), store.ErrConstraintViolation)

	tag := &domain.Tag{ID: nextID("tag"), Name: "x", UserID: "no-such-user", CreatedAt: now}
	assert.ErrorIs(t, s.CreateTag(ctx, tag), store.ErrConstraintViolation)

	_, err := s.GetNote(ctx, missingUser.ID)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func testNotePartialUpdate(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	f := mustFolder(t, s, u.ID, "Work", nil)
	n := mustNote(t, s, u.ID, "A", &f.ID)

	got, err := s.UpdateNote(ctx, n.ID, domain.NotePatch{Content: ptr("X")}, tick())
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "X", got.Content)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, f.ID, *got.FolderID)
	assert.True(t, got.UpdatedAt.After(n.UpdatedAt))
	assert.True(t, got.CreatedAt.Equal(n.CreatedAt))

	// A clock that stands still must not stall updated_at.
	frozen := got.UpdatedAt
	again, err := s.UpdateNote(ctx, n.ID, domain.NotePatch{Title: ptr("B")}, frozen)
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(frozen))

	unfiled, err := s.UpdateNote(ctx, n.ID, domain.NotePatch{FolderID: domain.Null[string]()}, tick())
	require.NoError(t, err)
	assert.Nil(t, unfiled.FolderID)
	assert.Equal(t, "B", unfiled.Title)

	_, err = s.UpdateNote(ctx, n.ID, domain.NotePatch{FolderID: domain.Some("no-such-folder")}, tick())
	assert.ErrorIs(t, err, store.ErrConstraintViolation)

	stored, err := s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.FolderID)
}

func testListNotesFilters(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	other := mustUser(t, s)

	f1 := mustFolder(t, s, u.ID, "F1", nil)
	f2 := mustFolder(t, s, u.ID, "F2", nil)
	tagA := mustTag(t, s, u.ID, "A")
	tagB := mustTag(t, s, u.ID, "B")

	inF1Tagged := mustNote(t, s, u.ID, "f1 tagged", &f1.ID)
	inF1Plain := mustNote(t, s, u.ID, "f1 plain", &f1.ID)
	inF2Tagged := mustNote(t, s, u.ID, "f2 tagged", &f2.ID)
	unfiledTagged := mustNote(t, s, u.ID, "unfiled tagged", nil)
	unfiledPlain := mustNote(t, s, u.ID, "unfiled plain", nil)
	foreign := mustNote(t, s, other.ID, "other user", nil)

	for _, n := range []*domain.Note{inF1Tagged, inF2Tagged, unfiledTagged} {
		_, err := s.AddTagToNote(ctx, n.ID, tagA.ID, tick())
		require.NoError(t, err)
	}
	_, err := s.AddTagToNote(ctx, inF1Tagged.ID, tagB.ID, tick())
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter domain.NoteFilter
		want   []string
	}{
		{"owner only", domain.NoteFilter{UserID: u.ID},
			sorted(inF1Tagged.ID, inF1Plain.ID, inF2Tagged.ID, unfiledTagged.ID, unfiledPlain.ID)},
		{"specific folder", domain.NoteFilter{UserID: u.ID, Folder: domain.Some(f1.ID)},
			sorted(inF1Tagged.ID, inF1Plain.ID)},
		{"no folder", domain.NoteFilter{UserID: u.ID, Folder: domain.Null[string]()},
			sorted(unfiledTagged.ID, unfiledPlain.ID)},
		{"tag", domain.NoteFilter{UserID: u.ID, TagID: &tagA.ID},
			sorted(inF1Tagged.ID, inF2Tagged.ID, unfiledTagged.ID)},
		{"folder and tag", domain.NoteFilter{UserID: u.ID, Folder: domain.Some(f1.ID), TagID: &tagA.ID},
			sorted(inF1Tagged.ID)},
		{"no folder and tag", domain.NoteFilter{UserID: u.ID, Folder: domain.Null[string](), TagID: &tagA.ID},
			sorted(unfiledTagged.ID)},
		{"second tag", domain.NoteFilter{UserID: u.ID, TagID: &tagB.ID},
			sorted(inF1Tagged.ID)},
		{"unknown tag", domain.NoteFilter{UserID: u.ID, TagID: ptr("no-such-tag")}, []string{}},
		{"unknown folder", domain.NoteFilter{UserID: u.ID, Folder: domain.Some("no-such-folder")}, []string{}},
		{"other owner", domain.NoteFilter{UserID: other.ID}, sorted(foreign.ID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := s.ListNotes(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, noteIDs(notes))
		})
	}

	t.Run("creation order", func(t *testing.T) {
		notes, err := s.ListNotes(ctx, domain.NoteFilter{UserID: u.ID})
		require.NoError(t, err)
		require.Len(t, notes, 5)
		assert.Equal(t, inF1Tagged.ID, notes[0].ID)
		assert.Equal(t, unfiledPlain.ID, notes[4].ID)
	})
}

func testListNotesUnknownOwner(t *testing.T, s store.Store) {
	notes, err := s.ListNotes(context.Background(), domain.NoteFilter{UserID: "no-such-user"})
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func testAddTagIsIdempotent(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	n := mustNote(t, s, u.ID, "A", nil)
	tag := mustTag(t, s, u.ID, "Urgent")

	first, err := s.AddTagToNote(ctx, n.ID, tag.ID, tick())
	require.NoError(t, err)
	second, err := s.AddTagToNote(ctx, n.ID, tag.ID, tick())
	require.NoError(t, err)

	assert.Equal(t, n.ID, second.NoteID)
	assert.Equal(t, tag.ID, second.TagID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	tags, err := s.ListNoteTags(ctx, n.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	count, err := s.CountReferences(ctx, domain.EntityNoteTag, "note_id", n.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testAddTagConcurrent(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	n := mustNote(t, s, u.ID, "A", nil)
	tag := mustTag(t, s, u.ID, "Urgent")

	const workers = 8
	var (
		wg      sync.WaitGroup
		results = make([]*domain.NoteTag, workers)
		errs    = make([]error, workers)
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.AddTagToNote(ctx, n.ID, tag.ID, tick())
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.True(t, results[0].CreatedAt.Equal(results[i].CreatedAt))
	}

	count, err := s.CountReferences(ctx, domain.EntityNoteTag, "tag_id", tag.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testAddTagNotFound(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	n := mustNote(t, s, u.ID, "A", nil)
	tag := mustTag(t, s, u.ID, "Urgent")

	_, err := s.AddTagToNote(ctx, "no-such-note", tag.ID, tick())
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = s.AddTagToNote(ctx, n.ID, "no-such-tag", tick())
	assert.ErrorIs(t, err, store.ErrTagNotFound)

	// Note is checked first.
	_, err = s.AddTagToNote(ctx, "no-such-note", "no-such-tag", tick())
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func testRemoveAndListNoteTags(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	n := mustNote(t, s, u.ID, "A", nil)
	t1 := mustTag(t, s, u.ID, "one")
	t2 := mustTag(t, s, u.ID, "two")

	empty, err := s.ListNoteTags(ctx, n.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, tag := range []*domain.Tag{t1, t2} {
		_, err := s.AddTagToNote(ctx, n.ID, tag.ID, tick())
		require.NoError(t, err)
	}

	tags, err := s.ListNoteTags(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, t1.ID, tags[0].ID)
	assert.Equal(t, "one", tags[0].Name)
	require.NotNil(t, tags[0].Color)
	assert.Equal(t, t2.ID, tags[1].ID)

	require.NoError(t, s.RemoveTagFromNote(ctx, n.ID, t1.ID))
	require.NoError(t, s.RemoveTagFromNote(ctx, n.ID, t1.ID))
	require.NoError(t, s.RemoveTagFromNote(ctx, "no-such-note", "no-such-tag"))

	tags, err = s.ListNoteTags(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, t2.ID, tags[0].ID)

	unknown, err := s.ListNoteTags(ctx, "no-such-note")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func testTagUpdate(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	tag := mustTag(t, s, u.ID, "Urgent")

	renamed, err := s.UpdateTag(ctx, tag.ID, domain.TagPatch{Name: ptr("Later")})
	require.NoError(t, err)
	assert.Equal(t, "Later", renamed.Name)
	require.NotNil(t, renamed.Color)
	assert.Equal(t, *tag.Color, *renamed.Color)
	assert.True(t, renamed.CreatedAt.Equal(tag.CreatedAt))

	cleared, err := s.UpdateTag(ctx, tag.ID, domain.TagPatch{Color: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Color)
	assert.Equal(t, "Later", cleared.Name)

	tags, err := s.ListTags(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Nil(t, tags[0].Color)
}

func testAttachments(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	n := mustNote(t, s, u.ID, "A", nil)

	a := mustAttachment(t, s, n.ID)
	b := mustAttachment(t, s, n.ID)

	got, err := s.GetAttachment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.FileSize, got.FileSize)
	assert.Equal(t, a.OriginalFilename, got.OriginalFilename)
	assert.Equal(t, a.MimeType, got.MimeType)
	assert.Equal(t, a.FilePath, got.FilePath)

	list, err := s.ListNoteAttachments(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)

	orphan := newAttachment("no-such-note")
	assert.ErrorIs(t, s.CreateAttachment(ctx, orphan), store.ErrConstraintViolation)

	zero := newAttachment(n.ID)
	zero.FileSize = 0
	assert.ErrorIs(t, s.CreateAttachment(ctx, zero), store.ErrConstraintViolation)

	require.NoError(t, s.DeleteAttachment(ctx, a.ID))
	_, err = s.GetAttachment(ctx, a.ID)
	assert.ErrorIs(t, err, store.ErrAttachmentNotFound)

	none, err := s.ListNoteAttachments(ctx, "no-such-note")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testUpdateUnknownIDs(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.UpdateFolder(ctx, "missing-id", domain.FolderPatch{Name: ptr("x")}, tick())
	assert.ErrorIs(t, err, store.ErrFolderNotFound)

	_, err = s.UpdateNote(ctx, "missing-id", domain.NotePatch{Title: ptr("x")}, tick())
	assert.ErrorIs(t, err, store.ErrNoteNotFound)

	_, err = s.UpdateTag(ctx, "missing-id", domain.TagPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, store.ErrTagNotFound)

	_, err = s.UpdateUser(ctx, "missing-id", domain.UserPatch{Name: ptr("x")}, tick())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	// An empty patch still needs the row to exist.
	_, err = s.UpdateNote(ctx, "missing-id", domain.NotePatch{}, tick())
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func testDeleteIsIdempotent(t *testing.T, s store.Store) {
	ctx := context.Background()

	assert.NoError(t, s.DeleteUser(ctx, "missing-id"))
	assert.NoError(t, s.DeleteFolder(ctx, "missing-id"))
	assert.NoError(t, s.DeleteNote(ctx, "missing-id"))
	assert.NoError(t, s.DeleteTag(ctx, "missing-id"))
	assert.NoError(t, s.DeleteAttachment(ctx, "missing-id"))

	u := mustUser(t, s)
	n := mustNote(t, s, u.ID, "A", nil)
	require.NoError(t, s.DeleteNote(ctx, n.ID))
	require.NoError(t, s.DeleteNote(ctx, n.ID))
}

func testDeleteFolderPolicy(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	f := mustFolder(t, s, u.ID, "Work", nil)
	child := mustFolder(t, s, u.ID, "Sub", &f.ID)
	inFolder := mustNote(t, s, u.ID, "A", &f.ID)
	tag := mustTag(t, s, u.ID, "Urgent")
	_, err := s.AddTagToNote(ctx, inFolder.ID, tag.ID, tick())
	require.NoError(t, err)
	att := mustAttachment(t, s, inFolder.ID)

	require.NoError(t, s.DeleteFolder(ctx, f.ID))

	note, err := s.GetNote(ctx, inFolder.ID)
	require.NoError(t, err)
	assert.Nil(t, note.FolderID)
	assert.Equal(t, "A", note.Title)

	folders, err := s.ListFolders(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, child.ID, folders[0].ID)
	require.NotNil(t, folders[0].ParentFolderID)
	assert.Equal(t, f.ID, *folders[0].ParentFolderID)

	tags, err := s.ListNoteTags(ctx, inFolder.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
	_, err = s.GetAttachment(ctx, att.ID)
	assert.NoError(t, err)
}

func testDeleteNotePolicy(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	n := mustNote(t, s, u.ID, "A", nil)
	keep := mustNote(t, s, u.ID, "B", nil)
	tag := mustTag(t, s, u.ID, "Urgent")
	for _, id := range []string{n.ID, keep.ID} {
		_, err := s.AddTagToNote(ctx, id, tag.ID, tick())
		require.NoError(t, err)
	}
	att := mustAttachment(t, s, n.ID)

	require.NoError(t, s.DeleteNote(ctx, n.ID))

	_, err := s.GetNote(ctx, n.ID)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
	_, err = s.GetAttachment(ctx, att.ID)
	assert.ErrorIs(t, err, store.ErrAttachmentNotFound)

	count, err := s.CountReferences(ctx, domain.EntityNoteTag, "note_id", n.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	tags, err := s.ListTags(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, tag.ID, tags[0].ID)

	tagged, err := s.ListNotes(ctx, domain.NoteFilter{UserID: u.ID, TagID: &tag.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, noteIDs(tagged))
}

func testDeleteTagPolicy(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	f := mustFolder(t, s, u.ID, "Work", nil)
	n := mustNote(t, s, u.ID, "A", &f.ID)
	tag := mustTag(t, s, u.ID, "Urgent")
	_, err := s.AddTagToNote(ctx, n.ID, tag.ID, tick())
	require.NoError(t, err)

	require.NoError(t, s.DeleteTag(ctx, tag.ID))

	tags, err := s.ListNoteTags(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)

	note, err := s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.Title, note.Title)
	assert.Equal(t, n.Content, note.Content)
	assert.Equal(t, f.ID, *note.FolderID)
	assert.True(t, n.UpdatedAt.Equal(note.UpdatedAt))
}

func testDeleteUserPolicy(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	survivor := mustUser(t, s)
	f := mustFolder(t, s, u.ID, "Work", nil)
	n := mustNote(t, s, u.ID, "A", &f.ID)
	tag := mustTag(t, s, u.ID, "Urgent")
	_, err := s.AddTagToNote(ctx, n.ID, tag.ID, tick())
	require.NoError(t, err)
	att := mustAttachment(t, s, n.ID)
	keep := mustNote(t, s, survivor.ID, "kept", nil)

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	_, err = s.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = s.GetFolder(ctx, f.ID)
	assert.ErrorIs(t, err, store.ErrFolderNotFound)
	_, err = s.GetNote(ctx, n.ID)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
	_, err = s.GetTag(ctx, tag.ID)
	assert.ErrorIs(t, err, store.ErrTagNotFound)
	_, err = s.GetAttachment(ctx, att.ID)
	assert.ErrorIs(t, err, store.ErrAttachmentNotFound)

	count, err := s.CountReferences(ctx, domain.EntityNoteTag, "tag_id", tag.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = s.GetNote(ctx, keep.ID)
	assert.NoError(t, err)
}

func testCountReferences(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	f := mustFolder(t, s, u.ID, "Work", nil)
	mustFolder(t, s, u.ID, "Sub", &f.ID)
	mustNote(t, s, u.ID, "A", &f.ID)
	mustNote(t, s, u.ID, "B", &f.ID)

	impact, err := domain.ComputeDeletionImpact(ctx, s, domain.EntityFolder, f.ID)
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, e := range impact.Effects {
		counts[string(e.Rule.Child)+"."+e.Rule.Column] = e.Count
	}
	assert.Equal(t, map[string]int{"note.folder_id": 2, "folder.parent_folder_id": 1}, counts)

	_, err = s.CountReferences(ctx, domain.EntityNote, "title", f.ID)
	assert.Error(t, err)
}

// testScenario walks the Work/Urgent example end to end.
func testScenario(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	work := mustFolder(t, s, u.ID, "Work", nil)
	a := mustNote(t, s, u.ID, "A", &work.ID)
	b := mustNote(t, s, u.ID, "B", nil)
	urgent := mustTag(t, s, u.ID, "Urgent")
	_, err := s.AddTagToNote(ctx, a.ID, urgent.ID, tick())
	require.NoError(t, err)

	got, err := s.ListNotes(ctx, domain.NoteFilter{UserID: u.ID, Folder: domain.Some(work.ID), TagID: &urgent.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, noteIDs(got))

	got, err = s.ListNotes(ctx, domain.NoteFilter{UserID: u.ID, Folder: domain.Null[string]()})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, noteIDs(got))

	require.NoError(t, s.DeleteFolder(ctx, work.ID))
	after, err := s.GetNote(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, after.FolderID)

	_, err = s.UpdateFolder(ctx, "missing-id", domain.FolderPatch{Name: ptr("x")}, tick())
	assert.ErrorIs(t, err, errors.ErrNotFound)

	err = s.CreateAttachment(ctx, newAttachment("missing-note"))
	assert.ErrorIs(t, err, errors.ErrConstraintViolation)
}
