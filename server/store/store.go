// Package store provides methods for registering and accessing database adapters.
package store

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/livelog/livelog/server/store/adapter"
	"github.com/livelog/livelog/server/store/types"
)

var adp adapter.Adapter
var availableAdapters = make(map[string]adapter.Adapter)

// Unique ID generator.
var uGen types.UidGenerator

type configType struct {
	// 16-byte key for XTEA. Used to initialize types.UidGenerator.
	UidKey []byte `json:"uid_key"`
	// Maximum number of results to return from adapter.
	MaxResults int `json:"max_results"`
	// DB adapter name to use. Should be one of those specified in `Adapters`.
	UseAdapter string `json:"use_adapter"`
	// Configurations for individual adapters.
	Adapters map[string]json.RawMessage `json:"adapters"`
}

func openAdapter(workerId int, jsonconf json.RawMessage) error {
	var config configType
	if err := json.Unmarshal(jsonconf, &config); err != nil {
		return errors.New("store: failed to parse config: " + err.Error() + "(" + string(jsonconf) + ")")
	}

	if adp == nil {
		if len(config.UseAdapter) > 0 {
			// Adapter name specified explicitly.
			if ad, ok := availableAdapters[config.UseAdapter]; ok {
				adp = ad
			} else {
				return errors.New("store: " + config.UseAdapter + " adapter is not available in this binary")
			}
		} else if len(availableAdapters) == 1 {
			// Default to the only entry in availableAdapters.
			for _, v := range availableAdapters {
				adp = v
			}
		} else {
			return errors.New("store: db adapter is not specified. Please set `store_config.use_adapter` in the config file")
		}
	}

	if adp.IsOpen() {
		return errors.New("store: connection is already opened")
	}

	// Initialize snowflake.
	if workerId < 0 || workerId > 1023 {
		return errors.New("store: invalid worker ID")
	}

	if err := uGen.Init(uint(workerId), config.UidKey); err != nil {
		return errors.New("store: failed to init snowflake: " + err.Error())
	}

	if err := adp.SetMaxResults(config.MaxResults); err != nil {
		return err
	}

	var adapterConfig json.RawMessage
	if config.Adapters != nil {
		adapterConfig = config.Adapters[adp.GetName()]
	}

	return adp.Open(adapterConfig)
}

// PersistentStorageInterface defines methods used for interaction with persistent storage.
type PersistentStorageInterface interface {
	Open(workerId int, jsonconf json.RawMessage) error
	Close() error
	IsOpen() bool
	GetAdapterName() string
	GetAdapterVersion() int
	GetDbVersion() int
	InitDb(jsonconf json.RawMessage, reset bool) error
	GetUid() types.Uid
	GetUidString() string
	DbStats() func() interface{}
}

// Store is the main object for interacting with persistent storage.
var Store PersistentStorageInterface

type storeObj struct{}

// Open initializes the persistence system. Adapter holds a connection pool for a database instance.
//
//	workerId - snowflake worker id of this process
//	jsonconf - configuration string
func (storeObj) Open(workerId int, jsonconf json.RawMessage) error {
	if err := openAdapter(workerId, jsonconf); err != nil {
		return err
	}

	return adp.CheckDbVersion()
}

// Close terminates connection to persistent storage.
func (storeObj) Close() error {
	if adp.IsOpen() {
		return adp.Close()
	}

	return nil
}

// IsOpen checks if persistent storage connection has been initialized.
func (storeObj) IsOpen() bool {
	if adp != nil {
		return adp.IsOpen()
	}

	return false
}

// GetAdapterName returns the name of the current adapter.
func (storeObj) GetAdapterName() string {
	if adp != nil {
		return adp.GetName()
	}

	return ""
}

// GetAdapterVersion returns version of the current adapter.
func (storeObj) GetAdapterVersion() int {
	if adp != nil {
		return adp.Version()
	}

	return -1
}

// GetDbVersion returns version of the underlying database.
func (storeObj) GetDbVersion() int {
	if adp != nil {
		vers, _ := adp.GetDbVersion()
		return vers
	}

	return -1
}

// InitDb creates and configures a new database instance. If 'reset' is true it will first
// attempt to drop an existing database. If jsonconf is nil it will assume that the adapter
// is already open. If it's non-nil and the adapter is not open, it will use the config
// string to open the adapter first.
func (s storeObj) InitDb(jsonconf json.RawMessage, reset bool) error {
	if !s.IsOpen() {
		if err := openAdapter(1, jsonconf); err != nil {
			return err
		}
	}
	return adp.CreateDb(reset)
}

// RegisterAdapter makes a persistence adapter available.
// If called twice or if the adapter is nil, it panics.
func RegisterAdapter(a adapter.Adapter) {
	if a == nil {
		panic("store: Register adapter is nil")
	}

	adapterName := a.GetName()
	if _, ok := availableAdapters[adapterName]; ok {
		panic("store: adapter '" + adapterName + "' is already registered")
	}
	availableAdapters[adapterName] = a
}

// GetUid generates a unique ID suitable for use as a primary key.
func (storeObj) GetUid() types.Uid {
	return uGen.Get()
}

// GetUidString generates a unique ID as a string.
func (storeObj) GetUidString() string {
	return uGen.GetStr()
}

// DecodeUid takes an XTEA encrypted Uid and decrypts it into an int64.
// This is needed for SQL compatibility. The original int64 values are
// generated by snowflake which ensures the top bit is unset.
func DecodeUid(uid types.Uid) int64 {
	if uid.IsZero() {
		return 0
	}
	return uGen.DecodeUid(uid)
}

// EncodeUid applies XTEA encryption to an int64 value. It's the inverse of DecodeUid.
func EncodeUid(id int64) types.Uid {
	if id == 0 {
		return types.ZeroUid
	}
	return uGen.EncodeInt64(id)
}

// DbStats returns a callback returning the db connection stats object.
func (s storeObj) DbStats() func() interface{} {
	if !s.IsOpen() {
		return nil
	}
	return adp.Stats
}

// UsersObjMapperInterface holds methods for persistence mapping of User objects.
type UsersObjMapperInterface interface {
	Get(uid types.Uid) (*types.User, error)
	GetAll() ([]types.User, error)
	GetByToken(token []byte) (*types.User, error)
	Update(user *types.User) error
}

// UsersObjMapper is the concrete mapper of User objects.
type UsersObjMapper struct{}

// Users is the anchor for storing/retrieving User objects.
var Users UsersObjMapperInterface

// Get loads a user record by id.
func (UsersObjMapper) Get(uid types.Uid) (*types.User, error) {
	return adp.UserGet(uid)
}

// GetAll loads all user records.
func (UsersObjMapper) GetAll() ([]types.User, error) {
	return adp.UserGetAll()
}

// GetByToken resolves a live session token into the user holding it.
func (UsersObjMapper) GetByToken(token []byte) (*types.User, error) {
	if len(token) == 0 {
		return nil, types.ErrMalformed
	}
	return adp.UserGetByToken(token)
}

// Update writes a modified user record, bumping the update timestamp.
func (UsersObjMapper) Update(user *types.User) error {
	user.UpdatedAt = types.TimeNow()
	return adp.UserUpdate(user)
}

// EventsObjMapperInterface holds methods for persistence mapping of Event objects.
type EventsObjMapperInterface interface {
	Get(id types.Uid) (*types.Event, error)
	GetAll() ([]types.Event, error)
	Upsert(event *types.Event) (*types.Event, error)
}

// EventsObjMapper is the concrete mapper of Event objects.
type EventsObjMapper struct{}

// Events is the anchor for storing/retrieving Event objects.
var Events EventsObjMapperInterface

// Get loads a single event by id.
func (EventsObjMapper) Get(id types.Uid) (*types.Event, error) {
	return adp.EventGet(id)
}

// GetAll loads all events.
func (EventsObjMapper) GetAll() ([]types.Event, error) {
	return adp.EventGetAll()
}

// Upsert creates the event if its id is zero, otherwise updates it. The
// returned event is the canonical record read back after the write.
func (EventsObjMapper) Upsert(event *types.Event) (*types.Event, error) {
	if event.Uid().IsZero() {
		event.SetUid(Store.GetUid())
		event.InitTimes()
	} else {
		event.UpdatedAt = types.TimeNow()
	}
	return adp.EventUpsert(event)
}

// GroupsObjMapperInterface holds methods for persistence mapping of permission
// groups, their event grants and their memberships.
type GroupsObjMapperInterface interface {
	GetAll() ([]types.PermissionGroup, error)
	Upsert(group *types.PermissionGroup) (*types.PermissionGroup, error)
	Delete(id types.Uid) error
	GrantsGetAll() ([]types.GroupEventGrant, error)
	GrantSet(grant *types.GroupEventGrant) error
	GrantUnset(group, event types.Uid) error
	MembersGetAll() ([]types.GroupUserPair, error)
	MemberAdd(group, user types.Uid) error
	MemberRemove(group, user types.Uid) error
	HighestForUserEvent(user, event types.Uid) (types.PermissionLevel, error)
}

// GroupsObjMapper is the concrete mapper of permission group objects.
type GroupsObjMapper struct{}

// Groups is the anchor for storing/retrieving PermissionGroup objects.
var Groups GroupsObjMapperInterface

// GetAll loads all permission groups.
func (GroupsObjMapper) GetAll() ([]types.PermissionGroup, error) {
	return adp.GroupGetAll()
}

// Upsert creates the group if its id is zero, otherwise updates it. The
// returned group is the canonical record read back after the write.
func (GroupsObjMapper) Upsert(group *types.PermissionGroup) (*types.PermissionGroup, error) {
	if group.Uid().IsZero() {
		group.SetUid(Store.GetUid())
		group.InitTimes()
	} else {
		group.UpdatedAt = types.TimeNow()
	}
	return adp.GroupUpsert(group)
}

// Delete removes a group with its grants and memberships.
func (GroupsObjMapper) Delete(id types.Uid) error {
	return adp.GroupDelete(id)
}

// GrantsGetAll loads all group-on-event grants.
func (GroupsObjMapper) GrantsGetAll() ([]types.GroupEventGrant, error) {
	return adp.GroupEventGetAll()
}

// GrantSet creates or updates a grant.
func (GroupsObjMapper) GrantSet(grant *types.GroupEventGrant) error {
	if grant.Level <= types.PermissionNone || grant.Level > types.PermissionSupervisor {
		return types.ErrMalformed
	}
	return adp.GroupEventSet(grant)
}

// GrantUnset removes a grant.
func (GroupsObjMapper) GrantUnset(group, event types.Uid) error {
	return adp.GroupEventUnset(group, event)
}

// MembersGetAll loads all group memberships.
func (GroupsObjMapper) MembersGetAll() ([]types.GroupUserPair, error) {
	return adp.GroupUserGetAll()
}

// MemberAdd adds a user to a group.
func (GroupsObjMapper) MemberAdd(group, user types.Uid) error {
	return adp.GroupUserAdd(group, user)
}

// MemberRemove removes a user from a group.
func (GroupsObjMapper) MemberRemove(group, user types.Uid) error {
	return adp.GroupUserRemove(group, user)
}

// HighestForUserEvent resolves the user's effective permission level on the
// event: the highest grant across all groups the user belongs to.
func (GroupsObjMapper) HighestForUserEvent(user, event types.Uid) (types.PermissionLevel, error) {
	return adp.PermissionForUserEvent(user, event)
}

// TypesObjMapperInterface holds methods for persistence mapping of entry types.
type TypesObjMapperInterface interface {
	GetAll() ([]types.EntryType, error)
	GetForEvent(event types.Uid) ([]types.EntryType, error)
	Upsert(et *types.EntryType) (*types.EntryType, error)
	Delete(id types.Uid) error
	EventsGetAll() ([]types.TypeEventPair, error)
	EventAdd(entryType, event types.Uid) error
	EventRemove(entryType, event types.Uid) error
}

// TypesObjMapper is the concrete mapper of entry type objects.
type TypesObjMapper struct{}

// Types is the anchor for storing/retrieving EntryType objects.
var Types TypesObjMapperInterface

// GetAll loads all entry types.
func (TypesObjMapper) GetAll() ([]types.EntryType, error) {
	return adp.TypeGetAll()
}

// GetForEvent loads the entry types available to the given event.
func (TypesObjMapper) GetForEvent(event types.Uid) ([]types.EntryType, error) {
	return adp.TypeGetForEvent(event)
}

// Upsert creates the entry type if its id is zero, otherwise updates it. The
// returned type is the canonical record read back after the write.
func (TypesObjMapper) Upsert(et *types.EntryType) (*types.EntryType, error) {
	if et.Uid().IsZero() {
		et.SetUid(Store.GetUid())
		et.InitTimes()
	} else {
		et.UpdatedAt = types.TimeNow()
	}
	return adp.TypeUpsert(et)
}

// Delete removes an entry type and its availability rows.
func (TypesObjMapper) Delete(id types.Uid) error {
	return adp.TypeDelete(id)
}

// EventsGetAll loads all type-to-event availability pairs.
func (TypesObjMapper) EventsGetAll() ([]types.TypeEventPair, error) {
	return adp.TypeEventGetAll()
}

// EventAdd makes an entry type available to an event.
func (TypesObjMapper) EventAdd(entryType, event types.Uid) error {
	return adp.TypeEventAdd(entryType, event)
}

// EventRemove revokes an entry type from an event.
func (TypesObjMapper) EventRemove(entryType, event types.Uid) error {
	return adp.TypeEventRemove(entryType, event)
}

// TagsObjMapperInterface holds methods for persistence mapping of tags.
type TagsObjMapperInterface interface {
	GetAll() ([]types.Tag, error)
	Upsert(tag *types.Tag) error
	Delete(id types.Uid) error
	ReplaceForEvent(event, oldTag, newTag types.Uid) (int, error)
}

// TagsObjMapper is the concrete mapper of tag objects.
type TagsObjMapper struct{}

// Tags is the anchor for storing/retrieving Tag objects.
var Tags TagsObjMapperInterface

// GetAll loads all tags.
func (TagsObjMapper) GetAll() ([]types.Tag, error) {
	return adp.TagGetAll()
}

// Upsert creates the tag if its id is zero, otherwise updates it.
// The name must already be normalized.
func (TagsObjMapper) Upsert(tag *types.Tag) error {
	if tag.Name == "" {
		return types.ErrMalformed
	}
	if tag.Uid().IsZero() {
		tag.SetUid(Store.GetUid())
		tag.InitTimes()
	} else {
		tag.UpdatedAt = types.TimeNow()
	}
	return adp.TagUpsert(tag)
}

// Delete removes a tag, detaching it from all entries.
func (TagsObjMapper) Delete(id types.Uid) error {
	return adp.TagDelete(id)
}

// ReplaceForEvent retags all entries of the event from oldTag to newTag.
func (TagsObjMapper) ReplaceForEvent(event, oldTag, newTag types.Uid) (int, error) {
	if oldTag == newTag {
		return 0, nil
	}
	return adp.TagReplaceForEvent(event, oldTag, newTag)
}

// EntriesObjMapperInterface holds methods for persistence mapping of log entries.
type EntriesObjMapperInterface interface {
	Create(entry *types.LogEntry) (*types.LogEntry, error)
	Update(entry *types.LogEntry, parts []string) (*types.LogEntry, error)
	Delete(id types.Uid) error
	GetAllForEvent(event types.Uid) ([]types.LogEntry, error)
}

// EntriesObjMapper is the concrete mapper of log entry objects.
type EntriesObjMapper struct{}

// Entries is the anchor for storing/retrieving LogEntry objects.
var Entries EntriesObjMapperInterface

// Create inserts a log entry, assigning the id and creation time. The
// returned entry is the canonical record read back after the write.
func (EntriesObjMapper) Create(entry *types.LogEntry) (*types.LogEntry, error) {
	if entry.Event.IsZero() || entry.EntryType.IsZero() {
		return nil, types.ErrMalformed
	}
	entry.SetUid(Store.GetUid())
	entry.InitTimes()

	return adp.EntryCreate(entry)
}

// Update writes the listed parts of the entry. The returned entry is the
// canonical record read back after the write.
func (EntriesObjMapper) Update(entry *types.LogEntry, parts []string) (*types.LogEntry, error) {
	if entry.Uid().IsZero() || len(parts) == 0 {
		return nil, types.ErrMalformed
	}
	entry.UpdatedAt = types.TimeNow()

	return adp.EntryUpdate(entry, parts)
}

// Delete removes a log entry.
func (EntriesObjMapper) Delete(id types.Uid) error {
	return adp.EntryDelete(id)
}

// GetAllForEvent loads the event's entries in snapshot order.
func (EntriesObjMapper) GetAllForEvent(event types.Uid) ([]types.LogEntry, error) {
	return adp.EntryGetAllForEvent(event)
}

// EditorsObjMapperInterface holds methods for persistence mapping of event
// editor assignments.
type EditorsObjMapperInterface interface {
	GetAll() ([]types.EditorPair, error)
	GetForEvent(event types.Uid) ([]types.User, error)
	Add(event, user types.Uid) error
	Remove(event, user types.Uid) error
}

// EditorsObjMapper is the concrete mapper of editor assignments.
type EditorsObjMapper struct{}

// Editors is the anchor for storing/retrieving editor assignments.
var Editors EditorsObjMapperInterface

// GetAll loads all event-editor assignments.
func (EditorsObjMapper) GetAll() ([]types.EditorPair, error) {
	return adp.EditorGetAll()
}

// GetForEvent loads the users assigned as editors of the event.
func (EditorsObjMapper) GetForEvent(event types.Uid) ([]types.User, error) {
	return adp.EditorGetForEvent(event)
}

// Add assigns a user as an editor of the event.
func (EditorsObjMapper) Add(event, user types.Uid) error {
	return adp.EditorAdd(event, user)
}

// Remove removes an editor assignment.
func (EditorsObjMapper) Remove(event, user types.Uid) error {
	return adp.EditorRemove(event, user)
}

// TabsObjMapperInterface holds methods for persistence mapping of event log tabs.
type TabsObjMapperInterface interface {
	GetAll() ([]types.Tab, error)
	GetForEvent(event types.Uid) ([]types.Tab, error)
	Upsert(tab *types.Tab) (*types.Tab, error)
	Delete(id types.Uid) error
}

// TabsObjMapper is the concrete mapper of event log tab objects.
type TabsObjMapper struct{}

// Tabs is the anchor for storing/retrieving Tab objects.
var Tabs TabsObjMapperInterface

// GetAll loads all tabs across all events.
func (TabsObjMapper) GetAll() ([]types.Tab, error) {
	return adp.TabGetAll()
}

// GetForEvent loads the event's tabs in start-time order.
func (TabsObjMapper) GetForEvent(event types.Uid) ([]types.Tab, error) {
	return adp.TabGetForEvent(event)
}

// Upsert creates the tab if its id is zero, otherwise updates it. The
// returned tab is the canonical record read back after the write.
func (TabsObjMapper) Upsert(tab *types.Tab) (*types.Tab, error) {
	if tab.Name == "" || tab.Event.IsZero() {
		return nil, types.ErrMalformed
	}
	if tab.Uid().IsZero() {
		tab.SetUid(Store.GetUid())
		tab.InitTimes()
	} else {
		tab.UpdatedAt = types.TimeNow()
	}
	return adp.TabUpsert(tab)
}

// Delete removes a tab.
func (TabsObjMapper) Delete(id types.Uid) error {
	return adp.TabDelete(id)
}

// PagesObjMapperInterface holds methods for persistence mapping of info pages.
type PagesObjMapperInterface interface {
	GetAll() ([]types.InfoPage, error)
	GetForEvent(event types.Uid) ([]types.InfoPage, error)
	Upsert(page *types.InfoPage) (*types.InfoPage, error)
	Delete(id types.Uid) error
}

// PagesObjMapper is the concrete mapper of info page objects.
type PagesObjMapper struct{}

// Pages is the anchor for storing/retrieving InfoPage objects.
var Pages PagesObjMapperInterface

// GetAll loads all info pages across all events.
func (PagesObjMapper) GetAll() ([]types.InfoPage, error) {
	return adp.PageGetAll()
}

// GetForEvent loads the event's info pages.
func (PagesObjMapper) GetForEvent(event types.Uid) ([]types.InfoPage, error) {
	return adp.PageGetForEvent(event)
}

// Upsert creates the page if its id is zero, otherwise updates it. The
// returned page is the canonical record read back after the write.
func (PagesObjMapper) Upsert(page *types.InfoPage) (*types.InfoPage, error) {
	if page.Title == "" || page.Event.IsZero() {
		return nil, types.ErrMalformed
	}
	if page.Uid().IsZero() {
		page.SetUid(Store.GetUid())
		page.InitTimes()
	} else {
		page.UpdatedAt = types.TimeNow()
	}
	return adp.PageUpsert(page)
}

// Delete removes an info page.
func (PagesObjMapper) Delete(id types.Uid) error {
	return adp.PageDelete(id)
}

// Length of a freshly generated application auth key, bytes.
const appKeyLength = 24

// AppsObjMapperInterface holds methods for persistence mapping of API applications.
type AppsObjMapperInterface interface {
	GetAll() ([]types.Application, error)
	Upsert(app *types.Application) (*types.Application, error)
	ResetKey(id types.Uid) (string, error)
	Revoke(id types.Uid) error
}

// AppsObjMapper is the concrete mapper of application objects.
type AppsObjMapper struct{}

// Apps is the anchor for storing/retrieving Application objects.
var Apps AppsObjMapperInterface

// GetAll loads all registered applications. Auth keys are never loaded.
func (AppsObjMapper) GetAll() ([]types.Application, error) {
	return adp.AppGetAll()
}

// Upsert creates the application if its id is zero, otherwise updates its
// name and permissions. A new application starts revoked: it has no auth
// key until ResetKey is called. The returned application is the canonical
// record read back after the write.
func (AppsObjMapper) Upsert(app *types.Application) (*types.Application, error) {
	if app.Name == "" {
		return nil, types.ErrMalformed
	}
	if app.Uid().IsZero() {
		app.SetUid(Store.GetUid())
		app.InitTimes()
	} else {
		app.UpdatedAt = types.TimeNow()
	}
	return adp.AppUpsert(app)
}

// ResetKey generates a fresh auth key for the application, stores it and
// returns it. The key is handed out once and never broadcast.
func (AppsObjMapper) ResetKey(id types.Uid) (string, error) {
	if id.IsZero() {
		return "", types.ErrMalformed
	}
	raw := make([]byte, appKeyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	key := base64.URLEncoding.EncodeToString(raw)
	if err := adp.AppSetKey(id, []byte(key)); err != nil {
		return "", err
	}
	return key, nil
}

// Revoke clears the application's auth key, cutting off its access.
func (AppsObjMapper) Revoke(id types.Uid) error {
	if id.IsZero() {
		return types.ErrMalformed
	}
	return adp.AppSetKey(id, nil)
}

func init() {
	Store = storeObj{}
	Users = UsersObjMapper{}
	Events = EventsObjMapper{}
	Groups = GroupsObjMapper{}
	Types = TypesObjMapper{}
	Tags = TagsObjMapper{}
	Entries = EntriesObjMapper{}
	Editors = EditorsObjMapper{}
	Tabs = TabsObjMapper{}
	Pages = PagesObjMapper{}
	Apps = AppsObjMapper{}
}
