/******************************************************************************
 *
 *  Description :
 *
 *    Handling of mutation requests: permission check against the cached
 *    subscription level, one durable store write, one broadcast of the
 *    canonical result.
 *
 *****************************************************************************/

package main

import (
	"github.com/livelog/livelog/server/logs"
	"github.com/livelog/livelog/server/store"
	"github.com/livelog/livelog/server/store/types"
)

// Minimum permission level per mutation kind on event log topics. Content
// edits need Edit; irreversible operations need Supervisor.
var logMutationLevels = map[string]types.PermissionLevel{
	"entry.new":    types.PermissionEdit,
	"entry.update": types.PermissionEdit,
	"entry.delete": types.PermissionSupervisor,
	"tag.update":   types.PermissionEdit,
	"tag.remove":   types.PermissionSupervisor,
	"tag.replace":  types.PermissionSupervisor,
}

// Mutations accepted on each administrative topic.
var admMutations = map[string]map[string]bool{
	"admusers":       {"user.update": true},
	"admevents":      {"event.upsert": true},
	"admgroups":      {"group.upsert": true, "group.delete": true},
	"admgroupevents": {"grant.set": true, "grant.unset": true},
	"admgroupusers":  {"member.add": true, "member.remove": true},
	"admtypes":       {"type.upsert": true, "type.delete": true},
	"admtypeevents":  {"typeevent.add": true, "typeevent.remove": true},
	"admtags":        {"tag.update": true, "tag.remove": true},
	"admeditors":     {"editor.add": true, "editor.remove": true},
	"admtabs":        {"tab.upsert": true, "tab.delete": true},
	"admpages":       {"page.upsert": true, "page.delete": true},
	"admapps":        {"app.upsert": true, "app.resetkey": true, "app.revoke": true},
}

// mutate applies one client-submitted mutation. The permission check uses
// the level cached at subscribe time; a rejected or failed request produces
// no store write and no broadcast, an accepted one produces exactly one of
// each.
func (s *Session) mutate(msg *ClientComMessage) {
	statsInc("MutationsTotal", 1)

	level, attached := s.subLevel(msg.Topic)
	if !attached {
		statsInc("RejectedMutations", 1)
		s.queueOut(ErrNotSubscribed(msg.Id, msg.Topic, msg.Timestamp))
		return
	}

	switch types.GetTopicCat(msg.Topic) {
	case types.TopicCatLog:
		s.mutateLog(msg, level)
	case types.TopicCatAdm:
		s.mutateAdm(msg, level)
	default:
		s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
	}
}

// mutateLog handles mutations on one event's log.
func (s *Session) mutateLog(msg *ClientComMessage, level types.PermissionLevel) {
	required, known := logMutationLevels[msg.Mut.What]
	if !known {
		s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
		return
	}
	if level < required {
		statsInc("RejectedMutations", 1)
		logs.Info.Println("mutate: rejected", msg.Mut.What, msg.Topic, s.sid)
		s.queueOut(ErrPermissionDenied(msg.Id, msg.Topic, msg.Timestamp))
		return
	}

	event := types.ParseLogName(msg.Topic)
	data := &MsgServerData{
		Topic:     msg.Topic,
		From:      msg.AsUser,
		Timestamp: msg.Timestamp,
		What:      msg.Mut.What,
	}
	var params interface{}

	switch msg.Mut.What {
	case "entry.new":
		entry := entryFromWire(msg.Mut.Entry, event)
		if entry == nil || !validMediaLinks(entry.MediaLinks) {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if entry.StartAt.IsZero() {
			entry.StartAt = timeToMinute(msg.Timestamp)
		}
		canonical, err := store.Entries.Create(entry)
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Entry = entryToWire(canonical)
		params = map[string]string{"id": canonical.Id}

	case "entry.update":
		entry := entryFromWire(msg.Mut.Entry, event)
		if entry == nil || entry.Uid().IsZero() || len(msg.Mut.Parts) == 0 ||
			!validMediaLinks(entry.MediaLinks) {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		canonical, err := store.Entries.Update(entry, msg.Mut.Parts)
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Entry = entryToWire(canonical)

	case "entry.delete":
		if msg.Mut.Entry == nil || types.ParseUid(msg.Mut.Entry.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Entries.Delete(types.ParseUid(msg.Mut.Entry.Id)); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Entry = &MsgLogEntry{Id: msg.Mut.Entry.Id}

	case "tag.update":
		tag, err := upsertTag(msg.Mut.Tag)
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Tag = tagToWire(tag)

	case "tag.remove":
		if msg.Mut.Tag == nil || types.ParseUid(msg.Mut.Tag.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Tags.Delete(types.ParseUid(msg.Mut.Tag.Id)); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Tag = &MsgTag{Id: msg.Mut.Tag.Id}

	case "tag.replace":
		if msg.Mut.Tag == nil || msg.Mut.NewTag == nil {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		oldTag := types.ParseUid(msg.Mut.Tag.Id)
		newTag := types.ParseUid(msg.Mut.NewTag.Id)
		if oldTag.IsZero() || newTag.IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		count, err := store.Tags.ReplaceForEvent(event, oldTag, newTag)
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Tag = &MsgTag{Id: msg.Mut.Tag.Id}
		data.NewTag = &MsgTag{Id: msg.Mut.NewTag.Id}
		params = map[string]int{"count": count}
	}

	s.finishMutation(msg, data, params)
}

// mutateAdm handles mutations on the administrative datasets. The cached
// level on an admin topic is Supervisor for administrators; anything less
// means the account lost its admin bit after an earlier session subscribed.
func (s *Session) mutateAdm(msg *ClientComMessage, level types.PermissionLevel) {
	if !admMutations[msg.Topic][msg.Mut.What] {
		s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
		return
	}
	if level < types.PermissionSupervisor {
		statsInc("RejectedMutations", 1)
		s.queueOut(ErrPermissionDenied(msg.Id, msg.Topic, msg.Timestamp))
		return
	}

	data := &MsgServerData{
		Topic:     msg.Topic,
		From:      msg.AsUser,
		Timestamp: msg.Timestamp,
		What:      msg.Mut.What,
	}
	var params interface{}

	switch msg.Mut.What {
	case "user.update":
		if msg.Mut.User == nil || types.ParseUid(msg.Mut.User.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		// Read-modify-write: only the editable fields come from the client.
		user, err := store.Users.Get(types.ParseUid(msg.Mut.User.Id))
		if err == nil && user == nil {
			err = types.ErrNotFound
		}
		if err == nil {
			user.Name = msg.Mut.User.Name
			user.IsAdmin = msg.Mut.User.IsAdmin
			if msg.Mut.User.Color != nil {
				user.Color = *msg.Mut.User.Color
			}
			err = store.Users.Update(user)
		}
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.User = userToWire(user)
		// The modified account learns about the change on all of its own
		// live sessions, subscribed or not.
		pushToUser(user.Uid(), &ServerComMessage{Data: &MsgServerData{
			Topic:     "me",
			Timestamp: msg.Timestamp,
			What:      "user.update",
			User:      data.User,
		}, Timestamp: msg.Timestamp})

	case "event.upsert":
		if msg.Mut.Event == nil || msg.Mut.Event.Name == "" {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		canonical, err := store.Events.Upsert(eventFromWire(msg.Mut.Event))
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Event = eventToWire(canonical)
		params = map[string]string{"id": data.Event.Id}

	case "group.upsert":
		if msg.Mut.Group == nil || msg.Mut.Group.Name == "" {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		canonical, err := store.Groups.Upsert(groupFromWire(msg.Mut.Group))
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Group = groupToWire(canonical)
		params = map[string]string{"id": data.Group.Id}

	case "group.delete":
		if msg.Mut.Group == nil || types.ParseUid(msg.Mut.Group.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Groups.Delete(types.ParseUid(msg.Mut.Group.Id)); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Group = &MsgGroup{Id: msg.Mut.Group.Id}

	case "grant.set":
		if msg.Mut.Grant == nil {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		grant := &types.GroupEventGrant{
			Group: types.ParseUid(msg.Mut.Grant.Group),
			Event: types.ParseUid(msg.Mut.Grant.Event),
			Level: types.ParsePermissionLevel(msg.Mut.Grant.Level),
		}
		if grant.Group.IsZero() || grant.Event.IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Groups.GrantSet(grant); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Grant = grantToWire(grant)

	case "grant.unset":
		if msg.Mut.Grant == nil {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		group := types.ParseUid(msg.Mut.Grant.Group)
		event := types.ParseUid(msg.Mut.Grant.Event)
		if group.IsZero() || event.IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Groups.GrantUnset(group, event); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Grant = &MsgGrant{Group: msg.Mut.Grant.Group, Event: msg.Mut.Grant.Event}

	case "member.add", "member.remove":
		if msg.Mut.Member == nil {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		group := types.ParseUid(msg.Mut.Member.Group)
		user := types.ParseUid(msg.Mut.Member.User)
		if group.IsZero() || user.IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		var err error
		if msg.Mut.What == "member.add" {
			err = store.Groups.MemberAdd(group, user)
		} else {
			err = store.Groups.MemberRemove(group, user)
		}
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Member = &MsgGroupUser{Group: msg.Mut.Member.Group, User: msg.Mut.Member.User}

	case "type.upsert":
		if msg.Mut.EntryType == nil || msg.Mut.EntryType.Name == "" {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		canonical, err := store.Types.Upsert(typeFromWire(msg.Mut.EntryType))
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.EntryType = typeToWire(canonical)
		params = map[string]string{"id": data.EntryType.Id}

	case "type.delete":
		if msg.Mut.EntryType == nil || types.ParseUid(msg.Mut.EntryType.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Types.Delete(types.ParseUid(msg.Mut.EntryType.Id)); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.EntryType = &MsgEntryType{Id: msg.Mut.EntryType.Id}

	case "typeevent.add", "typeevent.remove":
		if msg.Mut.TypeEvent == nil {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		et := types.ParseUid(msg.Mut.TypeEvent.EntryType)
		event := types.ParseUid(msg.Mut.TypeEvent.Event)
		if et.IsZero() || event.IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		var err error
		if msg.Mut.What == "typeevent.add" {
			err = store.Types.EventAdd(et, event)
		} else {
			err = store.Types.EventRemove(et, event)
		}
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.TypeEvent = &MsgTypeEvent{EntryType: msg.Mut.TypeEvent.EntryType, Event: msg.Mut.TypeEvent.Event}

	case "tag.update":
		tag, err := upsertTag(msg.Mut.Tag)
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Tag = tagToWire(tag)

	case "tag.remove":
		if msg.Mut.Tag == nil || types.ParseUid(msg.Mut.Tag.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Tags.Delete(types.ParseUid(msg.Mut.Tag.Id)); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Tag = &MsgTag{Id: msg.Mut.Tag.Id}

	case "editor.add", "editor.remove":
		if msg.Mut.Editor == nil {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		event := types.ParseUid(msg.Mut.Editor.Event)
		user := types.ParseUid(msg.Mut.Editor.User)
		if event.IsZero() || user.IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		var err error
		if msg.Mut.What == "editor.add" {
			err = store.Editors.Add(event, user)
		} else {
			err = store.Editors.Remove(event, user)
		}
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Editor = &MsgEditor{Event: msg.Mut.Editor.Event, User: msg.Mut.Editor.User}

	case "tab.upsert":
		if msg.Mut.Tab == nil || msg.Mut.Tab.Name == "" || types.ParseUid(msg.Mut.Tab.Event).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		canonical, err := store.Tabs.Upsert(tabFromWire(msg.Mut.Tab))
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Tab = tabToWire(canonical)
		params = map[string]string{"id": data.Tab.Id}

	case "tab.delete":
		if msg.Mut.Tab == nil || types.ParseUid(msg.Mut.Tab.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Tabs.Delete(types.ParseUid(msg.Mut.Tab.Id)); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Tab = &MsgTab{Id: msg.Mut.Tab.Id}

	case "page.upsert":
		if msg.Mut.Page == nil || msg.Mut.Page.Title == "" || types.ParseUid(msg.Mut.Page.Event).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		canonical, err := store.Pages.Upsert(pageFromWire(msg.Mut.Page))
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Page = pageToWire(canonical)
		params = map[string]string{"id": data.Page.Id}

	case "page.delete":
		if msg.Mut.Page == nil || types.ParseUid(msg.Mut.Page.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Pages.Delete(types.ParseUid(msg.Mut.Page.Id)); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.Page = &MsgPage{Id: msg.Mut.Page.Id}

	case "app.upsert":
		if msg.Mut.App == nil || msg.Mut.App.Name == "" {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		canonical, err := store.Apps.Upsert(appFromWire(msg.Mut.App))
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.App = appToWire(canonical)
		params = map[string]string{"id": data.App.Id}

	case "app.resetkey":
		if msg.Mut.App == nil || types.ParseUid(msg.Mut.App.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		// The fresh key goes only to the requesting session in the ack;
		// the broadcast announces the reset without it.
		key, err := store.Apps.ResetKey(types.ParseUid(msg.Mut.App.Id))
		if err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.App = &MsgApp{Id: msg.Mut.App.Id}
		params = map[string]string{"id": msg.Mut.App.Id, "key": key}

	case "app.revoke":
		if msg.Mut.App == nil || types.ParseUid(msg.Mut.App.Id).IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
		if err := store.Apps.Revoke(types.ParseUid(msg.Mut.App.Id)); err != nil {
			s.queueOutStoreError(err, msg)
			return
		}
		data.App = &MsgApp{Id: msg.Mut.App.Id, Revoked: true}
	}

	s.finishMutation(msg, data, params)
}

// finishMutation broadcasts the committed change and acknowledges the
// request. The write is already durable; a slow topic queue delays the
// fan-out but never un-commits anything.
func (s *Session) finishMutation(msg *ClientComMessage, data *MsgServerData, params interface{}) {
	globals.hub.route <- &ServerComMessage{
		Data:      data,
		RcptTo:    msg.Topic,
		AsUser:    msg.AsUser,
		Timestamp: msg.Timestamp,
	}
	s.queueOut(NoErrParams(msg.Id, msg.Topic, msg.Timestamp, params))
}

// upsertTag normalizes and persists a tag; shared between event-scoped and
// administrative tag edits since tags are global.
func upsertTag(src *MsgTag) (*types.Tag, error) {
	if src == nil {
		return nil, types.ErrMalformed
	}
	tag := tagFromWire(src)
	tag.Name = normalizeTagName(tag.Name)
	if tag.Name == "" {
		return nil, types.ErrMalformed
	}
	if err := store.Tags.Upsert(tag); err != nil {
		return nil, err
	}
	return tag, nil
}
