package main

import (
	"net/http"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/livelog/livelog/server/store"
	"github.com/livelog/livelog/server/store/mock_store"
	"github.com/livelog/livelog/server/store/types"
)

func verifyResponseCodes(r *Responses, codes []int, t *testing.T) {
	if len(r.messages) != len(codes) {
		t.Errorf("Responses: expected %d, received %d.", len(codes), len(r.messages))
		return
	}
	for i := 0; i < len(codes); i++ {
		resp := r.messages[i].(*ServerComMessage)
		if resp == nil {
			t.Fatalf("Response %d must be ServerComMessage", i)
		}
		if resp.Ctrl == nil {
			t.Fatalf("Response %d must contain a ctrl message.", i)
		}
		if resp.Ctrl.Code != codes[i] {
			t.Errorf("Response code: expected %d, got %d", codes[i], resp.Ctrl.Code)
		}
	}
}

func makeTestUser(uid types.Uid, name string, isAdmin bool) *types.User {
	usr := &types.User{Name: name, IsAdmin: isAdmin}
	usr.SetUid(uid)
	return usr
}

func TestDispatchRawMalformed(t *testing.T) {
	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatchRaw([]byte("this is not a message"))
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestDispatchNoMessage(t *testing.T) {
	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestDispatchMissingTopic(t *testing.T) {
	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{Id: "123", What: "entry.new"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestDispatchSubscribeUnknownTopic(t *testing.T) {
	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	// "me" is a delivery pseudo-topic, not subscribable.
	s.dispatch(&ClientComMessage{Sub: &MsgClientSub{Id: "123", Topic: "me"}})
	s.dispatch(&ClientComMessage{Sub: &MsgClientSub{Id: "124", Topic: "something"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusNotFound, http.StatusNotFound}, t)
}

func TestDispatchSubscribeMalformedLogName(t *testing.T) {
	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Sub: &MsgClientSub{Id: "123", Topic: "logzzz"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestDispatchSubscribeAdmUnknownDataset(t *testing.T) {
	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", true)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Sub: &MsgClientSub{Id: "123", Topic: "admnothing"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusNotFound}, t)
}

func TestDispatchSubscribeAdmNotAdmin(t *testing.T) {
	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Sub: &MsgClientSub{Id: "123", Topic: "admusers"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
}

func TestDispatchSubscribeAdmApps(t *testing.T) {
	uid := types.Uid(1)

	ctrl := gomock.NewController(t)
	apps := mock_store.NewMockAppsObjMapperInterface(ctrl)
	store.Apps = apps
	defer func() {
		store.Apps = nil
		ctrl.Finish()
	}()

	app := types.Application{Name: "overlay", ReadLog: true, Revoked: true}
	app.SetUid(types.Uid(77))
	apps.EXPECT().GetAll().Return([]types.Application{app}, nil)

	s := makeTestSession("sid1", uid)
	s.usr = makeTestUser(uid, "alice", true)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{join: make(chan *sessionJoin, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Sub: &MsgClientSub{Id: "123", Topic: "admapps"}})
	close(s.send)
	wg.Wait()

	if len(hub.join) != 1 {
		t.Fatalf("Hub join requests: expected 1, received %d.", len(hub.join))
	}
	join := <-hub.join
	if join.snap == nil || join.snap.Snap == nil {
		t.Fatal("Join request expected to carry a prebuilt snapshot.")
	}
	if len(join.snap.Snap.Apps) != 1 {
		t.Fatalf("Snapshot apps: expected 1, received %d.", len(join.snap.Snap.Apps))
	}
	got := join.snap.Snap.Apps[0]
	if got.Name != "overlay" || !got.ReadLog || !got.Revoked {
		t.Errorf("Snapshot app mismatch: %+v", got)
	}
}

func TestDispatchSubscribeLog(t *testing.T) {
	uid := types.Uid(1)
	event := types.Uid(42)

	ctrl := gomock.NewController(t)
	groups := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	events := mock_store.NewMockEventsObjMapperInterface(ctrl)
	etypes := mock_store.NewMockTypesObjMapperInterface(ctrl)
	tags := mock_store.NewMockTagsObjMapperInterface(ctrl)
	editors := mock_store.NewMockEditorsObjMapperInterface(ctrl)
	entries := mock_store.NewMockEntriesObjMapperInterface(ctrl)
	tabs := mock_store.NewMockTabsObjMapperInterface(ctrl)
	pages := mock_store.NewMockPagesObjMapperInterface(ctrl)
	store.Groups = groups
	store.Events = events
	store.Types = etypes
	store.Tags = tags
	store.Editors = editors
	store.Entries = entries
	store.Tabs = tabs
	store.Pages = pages
	defer func() {
		store.Groups = nil
		store.Events = nil
		store.Types = nil
		store.Tags = nil
		store.Editors = nil
		store.Entries = nil
		store.Tabs = nil
		store.Pages = nil
		ctrl.Finish()
	}()

	ev := &types.Event{Name: "Desert Bus 2026"}
	ev.SetUid(event)
	tab := types.Tab{Event: event, Name: "Hour 1"}
	tab.SetUid(types.Uid(301))
	groups.EXPECT().HighestForUserEvent(uid, event).Return(types.PermissionEdit, nil)
	events.EXPECT().Get(event).Return(ev, nil)
	etypes.EXPECT().GetForEvent(event).Return([]types.EntryType{}, nil)
	tags.EXPECT().GetAll().Return([]types.Tag{}, nil)
	editors.EXPECT().GetForEvent(event).Return([]types.User{}, nil)
	entries.EXPECT().GetAllForEvent(event).Return([]types.LogEntry{}, nil)
	tabs.EXPECT().GetForEvent(event).Return([]types.Tab{tab}, nil)
	pages.EXPECT().GetForEvent(event).Return([]types.InfoPage{}, nil)

	s := makeTestSession("sid1", uid)
	s.usr = makeTestUser(uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{join: make(chan *sessionJoin, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Sub: &MsgClientSub{Id: "123", Topic: event.LogName()}})
	close(s.send)
	wg.Wait()

	// Nothing is sent directly; the hub and topic reply after registration.
	if len(r.messages) != 0 {
		t.Errorf("Responses: expected 0, received %d.", len(r.messages))
	}
	if len(hub.join) != 1 {
		t.Fatalf("Hub join requests: expected 1, received %d.", len(hub.join))
	}
	join := <-hub.join
	if join.sess != s {
		t.Error("Join request: sess field expected to be the session under test.")
	}
	if join.level != types.PermissionEdit {
		t.Errorf("Join request level: expected edit, got %s", join.level.String())
	}
	if join.snap == nil || join.snap.Snap == nil {
		t.Fatal("Join request expected to carry a prebuilt snapshot.")
	}
	if join.snap.Snap.Event == nil || join.snap.Snap.Event.Name != "Desert Bus 2026" {
		t.Error("Snapshot expected to contain the event record.")
	}
	if join.snap.Snap.Level != "edit" {
		t.Errorf("Snapshot level: expected 'edit', got '%s'", join.snap.Snap.Level)
	}
	if len(join.snap.Snap.Tabs) != 1 || join.snap.Snap.Tabs[0].Name != "Hour 1" {
		t.Error("Snapshot expected to contain the event's tabs.")
	}
}

func TestDispatchSubscribeLogNoAccess(t *testing.T) {
	uid := types.Uid(1)
	event := types.Uid(42)

	ctrl := gomock.NewController(t)
	groups := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	store.Groups = groups
	defer func() {
		store.Groups = nil
		ctrl.Finish()
	}()

	groups.EXPECT().HighestForUserEvent(uid, event).Return(types.PermissionNone, nil)

	s := makeTestSession("sid1", uid)
	s.usr = makeTestUser(uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Sub: &MsgClientSub{Id: "123", Topic: event.LogName()}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
}

func TestDispatchSubscribeSnapshotFailure(t *testing.T) {
	uid := types.Uid(1)
	event := types.Uid(42)

	ctrl := gomock.NewController(t)
	groups := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	events := mock_store.NewMockEventsObjMapperInterface(ctrl)
	store.Groups = groups
	store.Events = events
	defer func() {
		store.Groups = nil
		store.Events = nil
		ctrl.Finish()
	}()

	groups.EXPECT().HighestForUserEvent(uid, event).Return(types.PermissionView, nil)
	events.EXPECT().Get(event).Return(nil, types.ErrInternal)

	s := makeTestSession("sid1", uid)
	s.usr = makeTestUser(uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Sub: &MsgClientSub{Id: "123", Topic: event.LogName()}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusInternalServerError}, t)
}

func TestDispatchLeave(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	leave := make(chan *sessionLeave, 1)
	s.subs[topicName] = &Subscription{done: leave, level: types.PermissionView}

	msg := &ClientComMessage{Leave: &MsgClientLeave{Id: "123", Topic: topicName}}
	s.dispatch(msg)
	close(s.send)
	wg.Wait()

	// The topic owns the use count and sends the reply.
	if len(r.messages) != 0 {
		t.Errorf("Responses: expected 0, received %d.", len(r.messages))
	}
	if len(leave) != 1 {
		t.Fatalf("Leave requests: expected 1, received %d.", len(leave))
	}
	req := <-leave
	if req.sess != s {
		t.Error("Leave request: sess field expected to be the session under test.")
	}
	if req.pkt != msg {
		t.Error("Leave request: expected to carry the original message.")
	}
}

func TestDispatchLeaveNotSubscribed(t *testing.T) {
	event := types.Uid(42)

	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Leave: &MsgClientLeave{Id: "123", Topic: event.LogName()}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusConflict}, t)
}

func TestDispatchNote(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	s.subs[topicName] = &Subscription{level: types.PermissionEdit}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Note: &MsgClientNote{
		Topic: topicName,
		What:  "typing",
		Field: "description",
		Text:  "omg a bus",
	}})
	close(s.send)
	wg.Wait()

	// Notes are not acknowledged.
	if len(r.messages) != 0 {
		t.Errorf("Responses: expected 0, received %d.", len(r.messages))
	}
	if len(hub.route) != 1 {
		t.Fatalf("Routed messages: expected 1, received %d.", len(hub.route))
	}
	routed := <-hub.route
	if routed.RcptTo != topicName {
		t.Errorf("Routed message addressee: expected '%s', got '%s'", topicName, routed.RcptTo)
	}
	if routed.SkipSid != s.sid {
		t.Errorf("Routed message skip-sid: expected '%s', got '%s'", s.sid, routed.SkipSid)
	}
	if routed.Data == nil || routed.Data.What != "typing" || routed.Data.Typing == nil {
		t.Fatalf("Routed message: expected {data typing}, got %s", routed.describe())
	}
	if routed.Data.Typing.Field != "description" {
		t.Errorf("Typing field: expected 'description', got '%s'", routed.Data.Typing.Field)
	}
	if routed.Data.Typing.Text != "omg a bus" {
		t.Errorf("Typing text: expected 'omg a bus', got '%s'", routed.Data.Typing.Text)
	}
	if routed.Data.Typing.User == nil || routed.Data.Typing.User.Name != "alice" {
		t.Error("Typing indicator expected to carry the author's profile.")
	}
}

func TestDispatchNoteNotSubscribed(t *testing.T) {
	event := types.Uid(42)

	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Note: &MsgClientNote{
		Topic: event.LogName(),
		What:  "typing",
		Field: "description",
		Text:  "lurker",
	}})
	close(s.send)
	wg.Wait()

	// Dropped on the floor: no ack, no broadcast.
	if len(r.messages) != 0 {
		t.Errorf("Responses: expected 0, received %d.", len(r.messages))
	}
	if len(hub.route) != 0 {
		t.Errorf("Routed messages: expected 0, received %d.", len(hub.route))
	}
}

func TestDispatchNoteInvalidField(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	s := makeTestSession("sid1", types.Uid(1))
	s.usr = makeTestUser(s.uid, "alice", false)
	s.subs[topicName] = &Subscription{level: types.PermissionEdit}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Note: &MsgClientNote{
		Topic: topicName,
		What:  "typing",
		Field: "bogus",
	}})
	close(s.send)
	wg.Wait()

	if len(r.messages) != 0 {
		t.Errorf("Responses: expected 0, received %d.", len(r.messages))
	}
	if len(hub.route) != 0 {
		t.Errorf("Routed messages: expected 0, received %d.", len(hub.route))
	}
}
