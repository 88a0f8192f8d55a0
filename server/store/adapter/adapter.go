// Package adapter contains the interface to be implemented by the database adapters.
package adapter

import (
	"encoding/json"

	t "github.com/livelog/livelog/server/store/types"
)

// Adapter is the interface that must be implemented by a database
// adapter. The current schema supports a single connection by database type.
type Adapter interface {
	// General

	// Open and configure the adapter.
	Open(config json.RawMessage) error
	// Close the adapter.
	Close() error
	// IsOpen checks if the adapter is ready for use.
	IsOpen() bool
	// GetDbVersion returns current database version.
	GetDbVersion() (int, error)
	// CheckDbVersion checks if the actual database version matches adapter version.
	CheckDbVersion() error
	// GetName returns the name of the adapter.
	GetName() string
	// SetMaxResults configures how many results can be returned in a single DB call.
	SetMaxResults(val int) error
	// CreateDb creates the database optionally dropping an existing database first.
	CreateDb(reset bool) error
	// Version returns adapter version.
	Version() int
	// Stats returns a DB connection stats object.
	Stats() interface{}

	// Users

	// UserGet returns the record for the given user id.
	UserGet(uid t.Uid) (*t.User, error)
	// UserGetAll returns all user records.
	UserGetAll() ([]t.User, error)
	// UserGetByToken returns the user holding the given live session token.
	UserGetByToken(token []byte) (*t.User, error)
	// UserUpdate updates a user record.
	UserUpdate(user *t.User) error

	// Events

	// EventGet loads a single event by id. Returns ErrNotFound if missing.
	EventGet(id t.Uid) (*t.Event, error)
	// EventGetAll returns all event records.
	EventGetAll() ([]t.Event, error)
	// EventUpsert creates or updates an event record, then reads the
	// canonical record back.
	EventUpsert(event *t.Event) (*t.Event, error)

	// Permission groups

	// GroupGetAll returns all permission groups.
	GroupGetAll() ([]t.PermissionGroup, error)
	// GroupUpsert creates or updates a permission group, then reads the
	// canonical record back.
	GroupUpsert(group *t.PermissionGroup) (*t.PermissionGroup, error)
	// GroupDelete deletes a group with its grants and memberships.
	GroupDelete(id t.Uid) error
	// GroupEventGetAll returns all group-on-event grants.
	GroupEventGetAll() ([]t.GroupEventGrant, error)
	// GroupEventSet creates or updates a grant.
	GroupEventSet(grant *t.GroupEventGrant) error
	// GroupEventUnset removes a grant.
	GroupEventUnset(group, event t.Uid) error
	// GroupUserGetAll returns all group memberships.
	GroupUserGetAll() ([]t.GroupUserPair, error)
	// GroupUserAdd adds a user to a group.
	GroupUserAdd(group, user t.Uid) error
	// GroupUserRemove removes a user from a group.
	GroupUserRemove(group, user t.Uid) error
	// PermissionForUserEvent returns the highest level granted to the user
	// on the event across all group memberships, PermissionNone if no grant.
	PermissionForUserEvent(user, event t.Uid) (t.PermissionLevel, error)

	// Entry types

	// TypeGetAll returns all entry types.
	TypeGetAll() ([]t.EntryType, error)
	// TypeGetForEvent returns entry types available to the given event.
	TypeGetForEvent(event t.Uid) ([]t.EntryType, error)
	// TypeUpsert creates or updates an entry type, then reads the canonical
	// record back.
	TypeUpsert(et *t.EntryType) (*t.EntryType, error)
	// TypeDelete deletes an entry type and its event availability rows.
	TypeDelete(id t.Uid) error
	// TypeEventGetAll returns all type-to-event availability pairs.
	TypeEventGetAll() ([]t.TypeEventPair, error)
	// TypeEventAdd makes an entry type available to an event.
	TypeEventAdd(entryType, event t.Uid) error
	// TypeEventRemove revokes an entry type from an event.
	TypeEventRemove(entryType, event t.Uid) error

	// Tags

	// TagGetAll returns all tags.
	TagGetAll() ([]t.Tag, error)
	// TagUpsert creates or updates a tag.
	TagUpsert(tag *t.Tag) error
	// TagDelete deletes a tag and detaches it from all entries.
	TagDelete(id t.Uid) error
	// TagReplaceForEvent retags all entries of the event from the old tag to
	// the new one in a single transaction. Returns the number of entries
	// changed.
	TagReplaceForEvent(event, oldTag, newTag t.Uid) (int, error)

	// Log entries

	// EntryCreate validates that the entry type is available to the event,
	// inserts the entry with its tag attachments and a history row in one
	// transaction, then reads the canonical record back.
	EntryCreate(entry *t.LogEntry) (*t.LogEntry, error)
	// EntryUpdate writes the listed parts of the entry plus a history row in
	// one transaction, then reads the canonical record back.
	EntryUpdate(entry *t.LogEntry, parts []string) (*t.LogEntry, error)
	// EntryDelete deletes an entry. Child entries get their parent cleared.
	EntryDelete(id t.Uid) error
	// EntryGetAllForEvent returns the event's entries with tags attached,
	// ordered by start time, then manual sort key with NULLs last, then
	// creation time.
	EntryGetAllForEvent(event t.Uid) ([]t.LogEntry, error)

	// Editors

	// EditorGetAll returns all event-editor assignments.
	EditorGetAll() ([]t.EditorPair, error)
	// EditorGetForEvent returns the users assigned as editors of the event.
	EditorGetForEvent(event t.Uid) ([]t.User, error)
	// EditorAdd assigns a user as an editor of the event.
	EditorAdd(event, user t.Uid) error
	// EditorRemove removes an editor assignment.
	EditorRemove(event, user t.Uid) error

	// Event log tabs

	// TabGetAll returns all tabs across all events.
	TabGetAll() ([]t.Tab, error)
	// TabGetForEvent returns the event's tabs ordered by start time.
	TabGetForEvent(event t.Uid) ([]t.Tab, error)
	// TabUpsert creates or updates a tab, then reads the canonical record back.
	TabUpsert(tab *t.Tab) (*t.Tab, error)
	// TabDelete deletes a tab.
	TabDelete(id t.Uid) error

	// Info pages

	// PageGetAll returns all info pages across all events.
	PageGetAll() ([]t.InfoPage, error)
	// PageGetForEvent returns the event's info pages.
	PageGetForEvent(event t.Uid) ([]t.InfoPage, error)
	// PageUpsert creates or updates an info page, then reads the canonical
	// record back.
	PageUpsert(page *t.InfoPage) (*t.InfoPage, error)
	// PageDelete deletes an info page.
	PageDelete(id t.Uid) error

	// Applications

	// AppGetAll returns all registered applications. Auth keys are not loaded.
	AppGetAll() ([]t.Application, error)
	// AppUpsert creates or updates an application record, then reads the
	// canonical record back. The auth key column is left untouched.
	AppUpsert(app *t.Application) (*t.Application, error)
	// AppSetKey replaces the application's auth key. A nil key revokes access.
	AppSetKey(id t.Uid, key []byte) error
}
