// Package types provides data types for persisting objects in the database.
package types

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"time"
)

// StoreError satisfies Error interface but allows constant values for
// direct comparison.
type StoreError string

// Error is required by error interface.
func (s StoreError) Error() string {
	return string(s)
}

const (
	// ErrInternal means DB or other internal failure.
	ErrInternal = StoreError("internal")
	// ErrMalformed means the input is malformed.
	ErrMalformed = StoreError("malformed")
	// ErrFailed means the operation failed for a domain reason, e.g. wrong
	// entry type for the event.
	ErrFailed = StoreError("failed")
	// ErrDuplicate means the object already exists.
	ErrDuplicate = StoreError("duplicate value")
	// ErrNotFound means the object was not found.
	ErrNotFound = StoreError("not found")
	// ErrPermissionDenied means the caller may not perform the operation.
	ErrPermissionDenied = StoreError("denied")
	// ErrNotInitialized means the store is not initialized.
	ErrNotInitialized = StoreError("not initialized")
	// ErrUnsupported means the operation is not supported by the adapter.
	ErrUnsupported = StoreError("unsupported")
)

// Uid is a database-specific record id, suitable to be used as a primary key.
type Uid uint64

// ZeroUid is a constant representing uninitialized Uid.
var ZeroUid Uid

const (
	uidBase64Unpadded = 11
	uidBase64Padded   = 12
)

// IsZero checks if Uid is uninitialized.
func (uid Uid) IsZero() bool {
	return uid == 0
}

// Compare returns 0 if uid is equal to u2, 1 if uid is greater than u2, -1 if smaller.
func (uid Uid) Compare(u2 Uid) int {
	if uid < u2 {
		return -1
	} else if uid > u2 {
		return 1
	}
	return 0
}

// MarshalBinary converts Uid to byte slice.
func (uid Uid) MarshalBinary() ([]byte, error) {
	dst := make([]byte, 8)
	binary.LittleEndian.PutUint64(dst, uint64(uid))
	return dst, nil
}

// UnmarshalBinary reads Uid from a byte slice.
func (uid *Uid) UnmarshalBinary(b []byte) error {
	if len(b) < 8 {
		return errors.New("Uid.UnmarshalBinary: invalid length")
	}
	*uid = Uid(binary.LittleEndian.Uint64(b))
	return nil
}

// UnmarshalText reads Uid from its base64 representation.
func (uid *Uid) UnmarshalText(src []byte) error {
	if len(src) != uidBase64Unpadded {
		return errors.New("Uid.UnmarshalText: invalid length")
	}
	dec := make([]byte, base64.URLEncoding.DecodedLen(uidBase64Padded))
	for len(src) < uidBase64Padded {
		src = append(src, '=')
	}
	count, err := base64.URLEncoding.Decode(dec, src)
	if count < 8 {
		if err != nil {
			return errors.New("Uid.UnmarshalText: failed to decode " + err.Error())
		}
		return errors.New("Uid.UnmarshalText: failed to decode")
	}
	*uid = Uid(binary.LittleEndian.Uint64(dec))
	return nil
}

// MarshalText converts Uid to base64 representation.
func (uid Uid) MarshalText() ([]byte, error) {
	if uid == 0 {
		return []byte{}, nil
	}
	src := make([]byte, 8)
	dst := make([]byte, base64.URLEncoding.EncodedLen(8))
	binary.LittleEndian.PutUint64(src, uint64(uid))
	base64.URLEncoding.Encode(dst, src)
	return dst[0:uidBase64Unpadded], nil
}

// MarshalJSON converts Uid to double quoted ("ajjj") string.
func (uid Uid) MarshalJSON() ([]byte, error) {
	dst, _ := uid.MarshalText()
	return append(append([]byte{'"'}, dst...), '"'), nil
}

// UnmarshalJSON reads Uid from a double quoted string.
func (uid *Uid) UnmarshalJSON(b []byte) error {
	size := len(b)
	if size == 2 && b[0] == '"' && b[1] == '"' {
		*uid = ZeroUid
		return nil
	}
	if size != (uidBase64Unpadded + 2) {
		return errors.New("Uid.UnmarshalJSON: invalid length")
	} else if b[0] != '"' || b[size-1] != '"' {
		return errors.New("Uid.UnmarshalJSON: unrecognized")
	}
	return uid.UnmarshalText(b[1 : size-1])
}

// String converts Uid to its base64 string representation.
func (uid Uid) String() string {
	buf, _ := uid.MarshalText()
	return string(buf)
}

// ParseUid parses a string which is not prefixed with anything.
func ParseUid(s string) Uid {
	var uid Uid
	uid.UnmarshalText([]byte(s))
	return uid
}

// LogName returns the name of the event log topic owned by this event id,
// i.e. "logAbCdEf01234".
func (uid Uid) LogName() string {
	return uid.PrefixId("log")
}

// PrefixId converts Uid to string prefixed with the given prefix, e.g. "logAbCdEf01234".
func (uid Uid) PrefixId(prefix string) string {
	if uid.IsZero() {
		return ""
	}
	return prefix + uid.String()
}

// ParseLogName parses an event log topic name of the form "logXXXXXX" into
// the event id.
func ParseLogName(s string) Uid {
	var uid Uid
	if strings.HasPrefix(s, "log") {
		(&uid).UnmarshalText([]byte(s)[3:])
	}
	return uid
}

// TopicCat is an enum of topic categories.
type TopicCat int

const (
	// TopicCatUnknown is an unrecognized topic category.
	TopicCatUnknown TopicCat = iota
	// TopicCatMe is a value denoting the session owner's own pseudo-topic.
	TopicCatMe
	// TopicCatLog is a value denoting an event log topic.
	TopicCatLog
	// TopicCatAdm is a value denoting an administrative collection topic.
	TopicCatAdm
)

// GetTopicCat given topic name returns topic category.
func GetTopicCat(name string) TopicCat {
	if name == "me" {
		return TopicCatMe
	}
	if len(name) < 3 {
		return TopicCatUnknown
	}
	switch name[:3] {
	case "log":
		return TopicCatLog
	case "adm":
		return TopicCatAdm
	default:
		return TopicCatUnknown
	}
}

// TimeNow returns current wall time in UTC rounded to milliseconds.
func TimeNow() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}

// ObjHeader is the header shared by all stored objects.
type ObjHeader struct {
	// Id of the object, base64 string form of the Uid.
	Id string `json:"id"`
	id Uid

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Uid returns the Uid of the object, decoding it from Id first if needed.
func (h *ObjHeader) Uid() Uid {
	if h.id.IsZero() && h.Id != "" {
		h.id.UnmarshalText([]byte(h.Id))
	}
	return h.id
}

// SetUid assigns the given Uid, keeping the string form in sync.
func (h *ObjHeader) SetUid(uid Uid) {
	h.id = uid
	h.Id = uid.String()
}

// InitTimes initializes time.Time variables in the header to current time.
func (h *ObjHeader) InitTimes() {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = TimeNow()
	}
	h.UpdatedAt = h.CreatedAt
}

// MergeTimes copies time.Time variables from h2 to h.
func (h *ObjHeader) MergeTimes(h2 *ObjHeader) {
	if h.CreatedAt.IsZero() || (!h2.CreatedAt.IsZero() && h2.CreatedAt.Before(h.CreatedAt)) {
		h.CreatedAt = h2.CreatedAt
	}
	if h.UpdatedAt.Before(h2.UpdatedAt) {
		h.UpdatedAt = h2.UpdatedAt
	}
}

// PermissionLevel is the level of access a user holds on one event log.
// Levels are totally ordered: None < View < Edit < Supervisor.
type PermissionLevel int

const (
	// PermissionNone means no access at all.
	PermissionNone PermissionLevel = iota
	// PermissionView grants read access to the event log.
	PermissionView
	// PermissionEdit additionally grants content mutations.
	PermissionEdit
	// PermissionSupervisor additionally grants irreversible operations
	// (deleting entries, removing and replacing tags).
	PermissionSupervisor
)

// CanEdit checks if the level permits content mutations.
func (pl PermissionLevel) CanEdit() bool {
	return pl >= PermissionEdit
}

// String returns the wire name of the level.
func (pl PermissionLevel) String() string {
	switch pl {
	case PermissionView:
		return "view"
	case PermissionEdit:
		return "edit"
	case PermissionSupervisor:
		return "supervisor"
	}
	return ""
}

// ParsePermissionLevel parses a wire name into a level. Unknown names parse
// as PermissionNone.
func ParsePermissionLevel(s string) PermissionLevel {
	switch s {
	case "view":
		return PermissionView
	case "edit":
		return PermissionEdit
	case "supervisor":
		return PermissionSupervisor
	}
	return PermissionNone
}

// MarshalJSON converts the level to a quoted string.
func (pl PermissionLevel) MarshalJSON() ([]byte, error) {
	return append(append([]byte{'"'}, pl.String()...), '"'), nil
}

// UnmarshalJSON reads the level from a quoted string.
func (pl *PermissionLevel) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("PermissionLevel: unrecognized")
	}
	*pl = ParsePermissionLevel(string(b[1 : len(b)-1]))
	return nil
}

// VideoEditState tracks the video editing status of one log entry.
type VideoEditState int

const (
	// VideoNone: no video is expected for the entry.
	VideoNone VideoEditState = iota
	// VideoMarked: the entry is marked for editing.
	VideoMarked
	// VideoDone: editing is complete.
	VideoDone
)

// String returns the wire name of the state.
func (ves VideoEditState) String() string {
	switch ves {
	case VideoMarked:
		return "marked"
	case VideoDone:
		return "done"
	}
	return "none"
}

// ParseVideoEditState parses a wire name into a state.
func ParseVideoEditState(s string) VideoEditState {
	switch s {
	case "marked":
		return VideoMarked
	case "done":
		return VideoDone
	}
	return VideoNone
}

// MarshalJSON converts the state to a quoted string.
func (ves VideoEditState) MarshalJSON() ([]byte, error) {
	return append(append([]byte{'"'}, ves.String()...), '"'), nil
}

// UnmarshalJSON reads the state from a quoted string.
func (ves *VideoEditState) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("VideoEditState: unrecognized")
	}
	*ves = ParseVideoEditState(string(b[1 : len(b)-1]))
	return nil
}

// RGB is a 24-bit display color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// User is a stored user account.
type User struct {
	ObjHeader
	// Unique display name.
	Name string `json:"name"`
	// Admin users may subscribe to and mutate the administrative datasets.
	IsAdmin bool `json:"isAdmin"`
	// Display color for the user's contributions.
	Color RGB `json:"color"`
}

// Event is a stored event: one show or marathon whose log is being kept.
type Event struct {
	ObjHeader
	Name string `json:"name"`
	// Scheduled start of the event.
	StartAt time.Time `json:"startAt"`
}

// PermissionGroup is a named set of users sharing access grants.
type PermissionGroup struct {
	ObjHeader
	Name string `json:"name"`
}

// GroupEventGrant gives all members of a group a permission level on an event.
type GroupEventGrant struct {
	Group Uid             `json:"group"`
	Event Uid             `json:"event"`
	Level PermissionLevel `json:"level"`
}

// GroupUserPair is a group membership record.
type GroupUserPair struct {
	Group Uid `json:"group"`
	User  Uid `json:"user"`
}

// EntryType categorizes log entries, e.g. "Run", "Donation incentive".
type EntryType struct {
	ObjHeader
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       RGB    `json:"color"`
	// Entries of this type must eventually receive an end time.
	RequireEndTime bool `json:"requireEndTime"`
}

// TypeEventPair makes an entry type available to an event.
type TypeEventPair struct {
	EntryType Uid `json:"entryType"`
	Event     Uid `json:"event"`
}

// Tag is a label applicable to log entries. Tags are global; names are
// NFC-normalized and lowercased before storage.
type Tag struct {
	ObjHeader
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EditorPair marks a user as a video editor for an event.
type EditorPair struct {
	Event Uid `json:"event"`
	User  Uid `json:"user"`
}

// Tab is a section header splitting one event's log into pages. Entries
// starting at or after the tab's start time belong to it.
type Tab struct {
	ObjHeader
	// Owning event.
	Event Uid    `json:"event"`
	Name  string `json:"name"`
	// First minute covered by the tab.
	StartAt time.Time `json:"startAt"`
}

// InfoPage is a reference document attached to an event, readable by
// anyone subscribed to the event's log.
type InfoPage struct {
	ObjHeader
	// Owning event.
	Event    Uid    `json:"event"`
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

// Application is a service account with API access to event logs. The auth
// key is issued separately and never stored in this struct; Revoked is true
// while no key is active.
type Application struct {
	ObjHeader
	Name string `json:"name"`
	// May read event logs.
	ReadLog bool `json:"readLog"`
	// May attach media links to entries.
	WriteLinks bool `json:"writeLinks"`
	Revoked    bool `json:"revoked"`
}

// LogEntry is one row of an event's log.
type LogEntry struct {
	ObjHeader
	// Owning event.
	Event Uid `json:"event"`
	// Start of the logged occurrence, minute granularity.
	StartAt time.Time `json:"startAt"`
	// End of the occurrence. Nil with EndIncomplete false means the entry
	// takes no end time; nil with EndIncomplete true means not entered yet.
	EndAt         *time.Time `json:"endAt,omitempty"`
	EndIncomplete bool       `json:"endIncomplete,omitempty"`

	EntryType         Uid      `json:"entryType"`
	Description       string   `json:"description"`
	MediaLinks        []string `json:"mediaLinks,omitempty"`
	SubmitterOrWinner string   `json:"submitterOrWinner,omitempty"`

	// Tags are stored in a join table and attached on read.
	Tags []Tag `json:"tags,omitempty"`

	VideoEditState      VideoEditState `json:"videoEditState"`
	PosterMoment        bool           `json:"posterMoment,omitempty"`
	Notes               string         `json:"notes,omitempty"`
	Editor              *Uid           `json:"editor,omitempty"`
	MissingGiveawayInfo bool           `json:"missingGiveawayInfo,omitempty"`

	// Manual ordering key; entries without one sort after those with one.
	SortKey *int32 `json:"sortKey,omitempty"`
	// Parent entry id; held as an id and resolved by lookup, never as a
	// pointer into another entry.
	Parent Uid `json:"parent,omitempty"`
}
