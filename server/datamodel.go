package main

/******************************************************************************
 *
 *  Description :
 *
 *    Wire protocol structures
 *
 *****************************************************************************/

import (
	"net/http"
	"strconv"
	"time"

	"github.com/livelog/livelog/server/store/types"
)

/////////////////////////////////////////////////////////////
// Client to server messages.

// MsgClientSub is a request to subscribe to a topic.
type MsgClientSub struct {
	Id    string `json:"id,omitempty"`
	Topic string `json:"topic"`
}

// MsgClientLeave is a request to drop one use of a topic subscription.
type MsgClientLeave struct {
	Id    string `json:"id,omitempty"`
	Topic string `json:"topic"`
}

// MsgClientMut is a mutation request against a subscribed topic. What selects
// the operation, the matching payload pointer carries the object.
type MsgClientMut struct {
	Id    string `json:"id,omitempty"`
	Topic string `json:"topic"`
	What  string `json:"what"`

	Entry *MsgLogEntry `json:"entry,omitempty"`
	// Entry fields to persist on entry.update.
	Parts []string `json:"parts,omitempty"`

	Tag *MsgTag `json:"tag,omitempty"`
	// Replacement tag for tag.replace.
	NewTag *MsgTag `json:"newTag,omitempty"`

	User      *MsgUser      `json:"user,omitempty"`
	Event     *MsgEvent     `json:"event,omitempty"`
	Group     *MsgGroup     `json:"group,omitempty"`
	Grant     *MsgGrant     `json:"grant,omitempty"`
	Member    *MsgGroupUser `json:"member,omitempty"`
	EntryType *MsgEntryType `json:"type,omitempty"`
	TypeEvent *MsgTypeEvent `json:"typeEvent,omitempty"`
	Editor    *MsgEditor    `json:"editor,omitempty"`
	Tab       *MsgTab       `json:"tab,omitempty"`
	Page      *MsgPage      `json:"page,omitempty"`
	App       *MsgApp       `json:"app,omitempty"`
}

// MsgClientNote is an ephemeral typing notification. Not acknowledged and
// never persisted.
type MsgClientNote struct {
	Topic string `json:"topic"`
	// Only "typing" currently.
	What string `json:"what"`
	// Entry field being typed into: parent, start, end, type, description,
	// media, submitter, notes, or clear to withdraw the indicator.
	Field string `json:"field,omitempty"`
	// Id of the entry being edited, empty for a new entry.
	Entry string `json:"entry,omitempty"`
	// Current text of the field.
	Text string `json:"text,omitempty"`
}

// ClientComMessage is a wrapper for client messages.
type ClientComMessage struct {
	Sub   *MsgClientSub   `json:"sub,omitempty"`
	Leave *MsgClientLeave `json:"leave,omitempty"`
	Mut   *MsgClientMut   `json:"mut,omitempty"`
	Note  *MsgClientNote  `json:"note,omitempty"`

	// Internal fields, not routed to clients.

	// Message ID denormalized.
	Id string `json:"-"`
	// Topic name denormalized from XXX.Topic.
	Topic string `json:"-"`
	// Sender's user id as string.
	AsUser string `json:"-"`
	// Timestamp when this message was received by the server.
	Timestamp time.Time `json:"-"`
}

/////////////////////////////////////////////////////////////
// Wire representations of stored objects.

// MsgUser is the public face of a user account.
type MsgUser struct {
	Id      string     `json:"id"`
	Name    string     `json:"name"`
	IsAdmin bool       `json:"isAdmin,omitempty"`
	Color   *types.RGB `json:"color,omitempty"`
}

// MsgEvent is an event record on the wire.
type MsgEvent struct {
	Id      string     `json:"id,omitempty"`
	Name    string     `json:"name"`
	StartAt *time.Time `json:"startAt,omitempty"`
}

// MsgGroup is a permission group on the wire.
type MsgGroup struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// MsgGrant gives a group a permission level on an event.
type MsgGrant struct {
	Group string `json:"group"`
	Event string `json:"event"`
	Level string `json:"level,omitempty"`
}

// MsgGroupUser is a group membership record on the wire.
type MsgGroupUser struct {
	Group string `json:"group"`
	User  string `json:"user"`
}

// MsgEntryType is an entry type on the wire.
type MsgEntryType struct {
	Id             string     `json:"id,omitempty"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Color          *types.RGB `json:"color,omitempty"`
	RequireEndTime bool       `json:"requireEndTime,omitempty"`
}

// MsgTypeEvent makes an entry type available to an event.
type MsgTypeEvent struct {
	EntryType string `json:"type"`
	Event     string `json:"event"`
}

// MsgTag is a tag on the wire.
type MsgTag struct {
	Id          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MsgEditor is an event editor assignment on the wire.
type MsgEditor struct {
	Event string `json:"event"`
	User  string `json:"user"`
}

// MsgTab is an event log section header on the wire.
type MsgTab struct {
	Id      string     `json:"id,omitempty"`
	Event   string     `json:"event,omitempty"`
	Name    string     `json:"name"`
	StartAt *time.Time `json:"startAt,omitempty"`
}

// MsgPage is an event info page on the wire.
type MsgPage struct {
	Id       string `json:"id,omitempty"`
	Event    string `json:"event,omitempty"`
	Title    string `json:"title"`
	Contents string `json:"contents,omitempty"`
}

// MsgApp is an application service account on the wire. The auth key is
// never broadcast; a freshly issued key travels in the {ctrl} params of the
// request that created it.
type MsgApp struct {
	Id         string `json:"id,omitempty"`
	Name       string `json:"name"`
	ReadLog    bool   `json:"readLog,omitempty"`
	WriteLinks bool   `json:"writeLinks,omitempty"`
	Revoked    bool   `json:"revoked,omitempty"`
}

// MsgLogEntry is one log entry on the wire.
type MsgLogEntry struct {
	Id      string     `json:"id,omitempty"`
	Event   string     `json:"event,omitempty"`
	StartAt *time.Time `json:"start,omitempty"`
	// Nil End with EndIncomplete false means the entry takes no end time;
	// nil with EndIncomplete true means not entered yet.
	EndAt         *time.Time `json:"end,omitempty"`
	EndIncomplete bool       `json:"endIncomplete,omitempty"`

	EntryType         string   `json:"type,omitempty"`
	Description       string   `json:"description,omitempty"`
	MediaLinks        []string `json:"media,omitempty"`
	SubmitterOrWinner string   `json:"submitter,omitempty"`
	Tags              []MsgTag `json:"tags,omitempty"`

	VideoEditState      string `json:"videoEdit,omitempty"`
	PosterMoment        bool   `json:"poster,omitempty"`
	Notes               string `json:"notes,omitempty"`
	Editor              string `json:"editor,omitempty"`
	MissingGiveawayInfo bool   `json:"giveaway,omitempty"`
	SortKey             *int32 `json:"sortKey,omitempty"`
	Parent              string `json:"parent,omitempty"`

	CreatedAt *time.Time `json:"created,omitempty"`
	UpdatedAt *time.Time `json:"updated,omitempty"`
}

// MsgTyping is a live typing indicator attached to a {data} message.
type MsgTyping struct {
	Field string   `json:"field"`
	Entry string   `json:"entry,omitempty"`
	Text  string   `json:"text,omitempty"`
	User  *MsgUser `json:"user,omitempty"`
}

/////////////////////////////////////////////////////////////
// Server to client messages.

// MsgServerCtrl is a server control message: acknowledgements and failures.
type MsgServerCtrl struct {
	Id     string      `json:"id,omitempty"`
	Topic  string      `json:"topic,omitempty"`
	Params interface{} `json:"params,omitempty"`

	Code      int       `json:"code"`
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"ts"`
}

func (src *MsgServerCtrl) describe() string {
	return src.Topic + " id=" + src.Id + " code=" + strconv.Itoa(src.Code) + " txt=" + src.Text
}

// MsgServerSnap is the initial snapshot of a topic, sent once on subscribe
// before any {data} updates. Fields are filled according to the topic kind.
type MsgServerSnap struct {
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"ts"`

	// Event log topics.
	Event *MsgEvent `json:"event,omitempty"`
	// Caller's permission level on this log, cached for the life of the
	// subscription.
	Level   string         `json:"level,omitempty"`
	Types   []MsgEntryType `json:"types,omitempty"`
	Tags    []MsgTag       `json:"tags,omitempty"`
	Editors []MsgUser      `json:"editors,omitempty"`
	// Tabs and Pages are filled for log topics (the event's own) and for
	// the admtabs/admpages datasets (all of them).
	Tabs    []MsgTab      `json:"tabs,omitempty"`
	Pages   []MsgPage     `json:"pages,omitempty"`
	Entries []MsgLogEntry `json:"entries,omitempty"`

	// Administrative topics.
	Users       []MsgUser      `json:"users,omitempty"`
	Events      []MsgEvent     `json:"events,omitempty"`
	Groups      []MsgGroup     `json:"groups,omitempty"`
	Grants      []MsgGrant     `json:"grants,omitempty"`
	Members     []MsgGroupUser `json:"members,omitempty"`
	TypeEvents  []MsgTypeEvent `json:"typeEvents,omitempty"`
	Assignments []MsgEditor    `json:"assignments,omitempty"`
	Apps        []MsgApp       `json:"apps,omitempty"`
}

func (src *MsgServerSnap) describe() string {
	return src.Topic + " entries=" + strconv.Itoa(len(src.Entries))
}

// MsgServerData is one broadcast state change. What mirrors the mutation
// operation that produced it, plus "typing" for ephemeral indicators.
type MsgServerData struct {
	Topic string `json:"topic"`
	// Id of the user who originated the change; empty if sent by the system.
	From      string    `json:"from,omitempty"`
	Timestamp time.Time `json:"ts"`
	What      string    `json:"what"`

	Entry     *MsgLogEntry  `json:"entry,omitempty"`
	Tag       *MsgTag       `json:"tag,omitempty"`
	NewTag    *MsgTag       `json:"newTag,omitempty"`
	Typing    *MsgTyping    `json:"typing,omitempty"`
	User      *MsgUser      `json:"user,omitempty"`
	Event     *MsgEvent     `json:"event,omitempty"`
	Group     *MsgGroup     `json:"group,omitempty"`
	Grant     *MsgGrant     `json:"grant,omitempty"`
	Member    *MsgGroupUser `json:"member,omitempty"`
	EntryType *MsgEntryType `json:"type,omitempty"`
	TypeEvent *MsgTypeEvent `json:"typeEvent,omitempty"`
	Editor    *MsgEditor    `json:"editor,omitempty"`
	Tab       *MsgTab       `json:"tab,omitempty"`
	Page      *MsgPage      `json:"page,omitempty"`
	App       *MsgApp       `json:"app,omitempty"`
}

func (src *MsgServerData) describe() string {
	return src.Topic + " from=" + src.From + " what=" + src.What
}

// ServerComMessage is a wrapper for server-side messages.
type ServerComMessage struct {
	Ctrl *MsgServerCtrl `json:"ctrl,omitempty"`
	Snap *MsgServerSnap `json:"snap,omitempty"`
	Data *MsgServerData `json:"data,omitempty"`

	// Internal fields.

	// Id of the originating client message, copied for {ctrl} acknowledgements.
	Id string `json:"-"`
	// User id of the sender of the original message.
	AsUser string `json:"-"`
	// Timestamp of the originating client message receipt.
	Timestamp time.Time `json:"-"`
	// Session id to skip when fanning out, used for typing indicators to
	// avoid echoing to the originating session.
	SkipSid string `json:"-"`
	// Routable topic name for hub delivery.
	RcptTo string `json:"-"`
}

func (src *ServerComMessage) describe() string {
	if src == nil {
		return "-"
	}

	switch {
	case src.Ctrl != nil:
		return "{ctrl " + src.Ctrl.describe() + "}"
	case src.Snap != nil:
		return "{snap " + src.Snap.describe() + "}"
	case src.Data != nil:
		return "{data " + src.Data.describe() + "}"
	default:
		return "{nil}"
	}
}

// Generators of server-side {ctrl} messages.

// NoErr indicates successful completion (200).
func NoErr(id, topic string, ts time.Time) *ServerComMessage {
	return NoErrParams(id, topic, ts, nil)
}

// NoErrParams indicates successful completion with additional parameters (200).
func NoErrParams(id, topic string, ts time.Time, params interface{}) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusOK, // 200
		Text:      "ok",
		Topic:     topic,
		Params:    params,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// NoErrAccepted indicates the request was accepted but not processed yet (202).
func NoErrAccepted(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusAccepted, // 202
		Text:      "accepted",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// NoErrUnsubscribed is the terminal notice of a dropped subscription (205).
func NoErrUnsubscribed(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusResetContent, // 205
		Text:      "unsubscribed",
		Topic:     topic,
		Timestamp: ts}, Id: id}
}

// NoErrShutdown means the session is being disconnected because server
// shutdown is in progress (205).
func NoErrShutdown(ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Code:      http.StatusResetContent, // 205
		Text:      "server shutdown",
		Timestamp: ts}}
}

// 4xx Errors.

// ErrMalformed means the message was not correctly formed (400).
func ErrMalformed(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusBadRequest, // 400
		Text:      "malformed",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrPermissionDenied means the caller's cached permission does not cover the
// operation (403).
func ErrPermissionDenied(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusForbidden, // 403
		Text:      "permission denied",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrTopicNotFound means the subscription target does not exist (404).
func ErrTopicNotFound(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusNotFound, // 404
		Text:      "topic not found",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrNotFound means the addressed object is not found in storage (404).
func ErrNotFound(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusNotFound, // 404
		Text:      "not found",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrNotSubscribed means the operation requires a live subscription to the
// topic and there is none (409).
func ErrNotSubscribed(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusConflict, // 409
		Text:      "not subscribed",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// 5xx Errors.

// ErrUnknown means a backend failure: the store call failed or returned
// something unusable (500).
func ErrUnknown(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusInternalServerError, // 500
		Text:      "internal error",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrServiceUnavailable means the topic is shutting down; the request may be
// retried (503).
func ErrServiceUnavailable(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusServiceUnavailable, // 503
		Text:      "service unavailable",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

/////////////////////////////////////////////////////////////
// Conversions between wire and stored representations.

func userToWire(user *types.User) *MsgUser {
	if user == nil {
		return nil
	}
	color := user.Color
	return &MsgUser{
		Id:      user.Uid().String(),
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
		Color:   &color,
	}
}

func usersToWire(users []types.User) []MsgUser {
	out := make([]MsgUser, 0, len(users))
	for i := range users {
		out = append(out, *userToWire(&users[i]))
	}
	return out
}

func eventToWire(event *types.Event) *MsgEvent {
	if event == nil {
		return nil
	}
	startAt := event.StartAt
	return &MsgEvent{
		Id:      event.Uid().String(),
		Name:    event.Name,
		StartAt: &startAt,
	}
}

func eventsToWire(events []types.Event) []MsgEvent {
	out := make([]MsgEvent, 0, len(events))
	for i := range events {
		out = append(out, *eventToWire(&events[i]))
	}
	return out
}

func eventFromWire(src *MsgEvent) *types.Event {
	if src == nil {
		return nil
	}
	event := &types.Event{Name: src.Name}
	event.SetUid(types.ParseUid(src.Id))
	if src.StartAt != nil {
		event.StartAt = src.StartAt.UTC()
	}
	return event
}

func groupToWire(group *types.PermissionGroup) *MsgGroup {
	if group == nil {
		return nil
	}
	return &MsgGroup{Id: group.Uid().String(), Name: group.Name}
}

func groupsToWire(groups []types.PermissionGroup) []MsgGroup {
	out := make([]MsgGroup, 0, len(groups))
	for i := range groups {
		out = append(out, *groupToWire(&groups[i]))
	}
	return out
}

func groupFromWire(src *MsgGroup) *types.PermissionGroup {
	if src == nil {
		return nil
	}
	group := &types.PermissionGroup{Name: src.Name}
	group.SetUid(types.ParseUid(src.Id))
	return group
}

func grantToWire(grant *types.GroupEventGrant) *MsgGrant {
	if grant == nil {
		return nil
	}
	return &MsgGrant{
		Group: grant.Group.String(),
		Event: grant.Event.String(),
		Level: grant.Level.String(),
	}
}

func grantsToWire(grants []types.GroupEventGrant) []MsgGrant {
	out := make([]MsgGrant, 0, len(grants))
	for i := range grants {
		out = append(out, *grantToWire(&grants[i]))
	}
	return out
}

func membersToWire(pairs []types.GroupUserPair) []MsgGroupUser {
	out := make([]MsgGroupUser, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, MsgGroupUser{Group: p.Group.String(), User: p.User.String()})
	}
	return out
}

func typeToWire(et *types.EntryType) *MsgEntryType {
	if et == nil {
		return nil
	}
	color := et.Color
	return &MsgEntryType{
		Id:             et.Uid().String(),
		Name:           et.Name,
		Description:    et.Description,
		Color:          &color,
		RequireEndTime: et.RequireEndTime,
	}
}

func typesToWire(ets []types.EntryType) []MsgEntryType {
	out := make([]MsgEntryType, 0, len(ets))
	for i := range ets {
		out = append(out, *typeToWire(&ets[i]))
	}
	return out
}

func typeFromWire(src *MsgEntryType) *types.EntryType {
	if src == nil {
		return nil
	}
	et := &types.EntryType{
		Name:           src.Name,
		Description:    src.Description,
		RequireEndTime: src.RequireEndTime,
	}
	et.SetUid(types.ParseUid(src.Id))
	if src.Color != nil {
		et.Color = *src.Color
	}
	return et
}

func typeEventsToWire(pairs []types.TypeEventPair) []MsgTypeEvent {
	out := make([]MsgTypeEvent, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, MsgTypeEvent{EntryType: p.EntryType.String(), Event: p.Event.String()})
	}
	return out
}

func tagToWire(tag *types.Tag) *MsgTag {
	if tag == nil {
		return nil
	}
	return &MsgTag{
		Id:          tag.Uid().String(),
		Name:        tag.Name,
		Description: tag.Description,
	}
}

func tagsToWire(tags []types.Tag) []MsgTag {
	out := make([]MsgTag, 0, len(tags))
	for i := range tags {
		out = append(out, *tagToWire(&tags[i]))
	}
	return out
}

func tagFromWire(src *MsgTag) *types.Tag {
	if src == nil {
		return nil
	}
	tag := &types.Tag{Name: src.Name, Description: src.Description}
	tag.SetUid(types.ParseUid(src.Id))
	return tag
}

func tabToWire(tab *types.Tab) *MsgTab {
	if tab == nil {
		return nil
	}
	startAt := tab.StartAt
	return &MsgTab{
		Id:      tab.Uid().String(),
		Event:   tab.Event.String(),
		Name:    tab.Name,
		StartAt: &startAt,
	}
}

func tabsToWire(tabs []types.Tab) []MsgTab {
	out := make([]MsgTab, 0, len(tabs))
	for i := range tabs {
		out = append(out, *tabToWire(&tabs[i]))
	}
	return out
}

func tabFromWire(src *MsgTab) *types.Tab {
	if src == nil {
		return nil
	}
	tab := &types.Tab{Event: types.ParseUid(src.Event), Name: src.Name}
	tab.SetUid(types.ParseUid(src.Id))
	if src.StartAt != nil {
		tab.StartAt = timeToMinute(src.StartAt.UTC())
	}
	return tab
}

func pageToWire(page *types.InfoPage) *MsgPage {
	if page == nil {
		return nil
	}
	return &MsgPage{
		Id:       page.Uid().String(),
		Event:    page.Event.String(),
		Title:    page.Title,
		Contents: page.Contents,
	}
}

func pagesToWire(pages []types.InfoPage) []MsgPage {
	out := make([]MsgPage, 0, len(pages))
	for i := range pages {
		out = append(out, *pageToWire(&pages[i]))
	}
	return out
}

func pageFromWire(src *MsgPage) *types.InfoPage {
	if src == nil {
		return nil
	}
	page := &types.InfoPage{
		Event:    types.ParseUid(src.Event),
		Title:    src.Title,
		Contents: src.Contents,
	}
	page.SetUid(types.ParseUid(src.Id))
	return page
}

func appToWire(app *types.Application) *MsgApp {
	if app == nil {
		return nil
	}
	return &MsgApp{
		Id:         app.Uid().String(),
		Name:       app.Name,
		ReadLog:    app.ReadLog,
		WriteLinks: app.WriteLinks,
		Revoked:    app.Revoked,
	}
}

func appsToWire(apps []types.Application) []MsgApp {
	out := make([]MsgApp, 0, len(apps))
	for i := range apps {
		out = append(out, *appToWire(&apps[i]))
	}
	return out
}

func appFromWire(src *MsgApp) *types.Application {
	if src == nil {
		return nil
	}
	app := &types.Application{
		Name:       src.Name,
		ReadLog:    src.ReadLog,
		WriteLinks: src.WriteLinks,
	}
	app.SetUid(types.ParseUid(src.Id))
	return app
}

func editorsToWire(pairs []types.EditorPair) []MsgEditor {
	out := make([]MsgEditor, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, MsgEditor{Event: p.Event.String(), User: p.User.String()})
	}
	return out
}

func entryToWire(entry *types.LogEntry) *MsgLogEntry {
	if entry == nil {
		return nil
	}
	startAt := entry.StartAt
	createdAt := entry.CreatedAt
	updatedAt := entry.UpdatedAt
	msg := &MsgLogEntry{
		Id:                entry.Uid().String(),
		Event:             entry.Event.String(),
		StartAt:           &startAt,
		EndAt:             entry.EndAt,
		EndIncomplete:     entry.EndIncomplete,
		EntryType:         entry.EntryType.String(),
		Description:       entry.Description,
		MediaLinks:        entry.MediaLinks,
		SubmitterOrWinner: entry.SubmitterOrWinner,
		Tags:              tagsToWire(entry.Tags),
		VideoEditState:    entry.VideoEditState.String(),
		PosterMoment:      entry.PosterMoment,
		Notes:             entry.Notes,
		SortKey:           entry.SortKey,
		CreatedAt:         &createdAt,
		UpdatedAt:         &updatedAt,
	}
	msg.MissingGiveawayInfo = entry.MissingGiveawayInfo
	if entry.Editor != nil {
		msg.Editor = entry.Editor.String()
	}
	if !entry.Parent.IsZero() {
		msg.Parent = entry.Parent.String()
	}
	return msg
}

func entriesToWire(entries []types.LogEntry) []MsgLogEntry {
	out := make([]MsgLogEntry, 0, len(entries))
	for i := range entries {
		out = append(out, *entryToWire(&entries[i]))
	}
	return out
}

// entryFromWire converts a client-submitted entry. The event id comes from
// the topic, never from the client payload.
func entryFromWire(src *MsgLogEntry, event types.Uid) *types.LogEntry {
	if src == nil {
		return nil
	}
	entry := &types.LogEntry{
		Event:             event,
		EndIncomplete:     src.EndIncomplete,
		EntryType:         types.ParseUid(src.EntryType),
		Description:       src.Description,
		MediaLinks:        src.MediaLinks,
		SubmitterOrWinner: src.SubmitterOrWinner,
		VideoEditState:    types.ParseVideoEditState(src.VideoEditState),
		PosterMoment:      src.PosterMoment,
		Notes:             src.Notes,
		SortKey:           src.SortKey,
		Parent:            types.ParseUid(src.Parent),
	}
	entry.MissingGiveawayInfo = src.MissingGiveawayInfo
	entry.SetUid(types.ParseUid(src.Id))
	if src.StartAt != nil {
		entry.StartAt = timeToMinute(src.StartAt.UTC())
	}
	if src.EndAt != nil {
		end := timeToMinute(src.EndAt.UTC())
		entry.EndAt = &end
		entry.EndIncomplete = false
	}
	if src.Editor != "" {
		editor := types.ParseUid(src.Editor)
		entry.Editor = &editor
	}
	for _, wt := range src.Tags {
		entry.Tags = append(entry.Tags, *tagFromWire(&wt))
	}
	return entry
}
