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

func TestMutateNotAttached(t *testing.T) {
	event := types.Uid(42)

	s := makeTestSession("sid1", types.Uid(1))
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: event.LogName(),
		What:  "entry.new",
		Entry: &MsgLogEntry{Description: "bus crash"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusConflict}, t)
	if len(hub.route) != 0 {
		t.Errorf("Routed messages: expected 0, received %d.", len(hub.route))
	}
}

func TestMutateLogPermissionDenied(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	// No expectations: the store must not be touched.
	ctrl := gomock.NewController(t)
	entries := mock_store.NewMockEntriesObjMapperInterface(ctrl)
	store.Entries = entries
	defer func() {
		store.Entries = nil
		ctrl.Finish()
	}()

	s := makeTestSession("sid1", types.Uid(1))
	s.subs[topicName] = &Subscription{level: types.PermissionView}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: topicName,
		What:  "entry.new",
		Entry: &MsgLogEntry{Description: "bus crash"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
	if len(hub.route) != 0 {
		t.Errorf("Routed messages: expected 0, received %d.", len(hub.route))
	}
}

func TestMutateLogDeleteRequiresSupervisor(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	ctrl := gomock.NewController(t)
	entries := mock_store.NewMockEntriesObjMapperInterface(ctrl)
	store.Entries = entries
	defer func() {
		store.Entries = nil
		ctrl.Finish()
	}()

	s := makeTestSession("sid1", types.Uid(1))
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

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: topicName,
		What:  "entry.delete",
		Entry: &MsgLogEntry{Id: types.Uid(900).String()},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
	if len(hub.route) != 0 {
		t.Errorf("Routed messages: expected 0, received %d.", len(hub.route))
	}
}

func TestMutateLogUnknownOperation(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	s := makeTestSession("sid1", types.Uid(1))
	s.subs[topicName] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: topicName,
		What:  "entry.bogus",
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestMutateLogEntryNew(t *testing.T) {
	uid := types.Uid(1)
	event := types.Uid(42)
	topicName := event.LogName()

	ctrl := gomock.NewController(t)
	entries := mock_store.NewMockEntriesObjMapperInterface(ctrl)
	store.Entries = entries
	defer func() {
		store.Entries = nil
		ctrl.Finish()
	}()

	canonical := &types.LogEntry{
		Event:       event,
		Description: "bus crash",
	}
	canonical.SetUid(types.Uid(900))
	canonical.InitTimes()

	entries.EXPECT().Create(gomock.Any()).DoAndReturn(
		func(entry *types.LogEntry) (*types.LogEntry, error) {
			if entry.Event != event {
				t.Errorf("Entry event: expected %s, got %s", event.String(), entry.Event.String())
			}
			// A missing start time defaults to the receipt minute.
			if entry.StartAt.IsZero() {
				t.Error("Entry start time expected to be defaulted.")
			}
			return canonical, nil
		})

	s := makeTestSession("sid1", uid)
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

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: topicName,
		What:  "entry.new",
		Entry: &MsgLogEntry{Description: "bus crash"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	ack := r.messages[0].(*ServerComMessage)
	params, ok := ack.Ctrl.Params.(map[string]string)
	if !ok || params["id"] != canonical.Id {
		t.Errorf("Ack params: expected id '%s', got %v", canonical.Id, ack.Ctrl.Params)
	}

	if len(hub.route) != 1 {
		t.Fatalf("Routed messages: expected 1, received %d.", len(hub.route))
	}
	routed := <-hub.route
	if routed.RcptTo != topicName {
		t.Errorf("Routed message addressee: expected '%s', got '%s'", topicName, routed.RcptTo)
	}
	if routed.Data == nil || routed.Data.What != "entry.new" {
		t.Fatalf("Routed message: expected {data entry.new}, got %s", routed.describe())
	}
	// The broadcast carries the canonical stored entry, not the submission.
	if routed.Data.Entry == nil || routed.Data.Entry.Id != canonical.Id {
		t.Error("Routed message expected to carry the canonical entry.")
	}
	if routed.Data.From != uid.String() {
		t.Errorf("Routed message author: expected '%s', got '%s'", uid.String(), routed.Data.From)
	}
}

func TestMutateLogEntryNewStoreFailure(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	ctrl := gomock.NewController(t)
	entries := mock_store.NewMockEntriesObjMapperInterface(ctrl)
	store.Entries = entries
	defer func() {
		store.Entries = nil
		ctrl.Finish()
	}()

	entries.EXPECT().Create(gomock.Any()).Return(nil, types.ErrInternal)

	s := makeTestSession("sid1", types.Uid(1))
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

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: topicName,
		What:  "entry.new",
		Entry: &MsgLogEntry{Description: "bus crash"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusInternalServerError}, t)
	// A failed write is never broadcast.
	if len(hub.route) != 0 {
		t.Errorf("Routed messages: expected 0, received %d.", len(hub.route))
	}
}

func TestMutateLogEntryNewBadMediaLinks(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	ctrl := gomock.NewController(t)
	entries := mock_store.NewMockEntriesObjMapperInterface(ctrl)
	store.Entries = entries
	defer func() {
		store.Entries = nil
		ctrl.Finish()
	}()

	s := makeTestSession("sid1", types.Uid(1))
	s.subs[topicName] = &Subscription{level: types.PermissionEdit}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: topicName,
		What:  "entry.new",
		Entry: &MsgLogEntry{
			Description: "bus crash",
			MediaLinks:  []string{"ftp://clips.example.com/1"},
		},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestMutateLogEntryUpdateNoParts(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	ctrl := gomock.NewController(t)
	entries := mock_store.NewMockEntriesObjMapperInterface(ctrl)
	store.Entries = entries
	defer func() {
		store.Entries = nil
		ctrl.Finish()
	}()

	s := makeTestSession("sid1", types.Uid(1))
	s.subs[topicName] = &Subscription{level: types.PermissionEdit}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: topicName,
		What:  "entry.update",
		Entry: &MsgLogEntry{Id: types.Uid(900).String(), Description: "updated"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestMutateTagReplace(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()
	oldTag := types.Uid(7)
	newTag := types.Uid(8)

	ctrl := gomock.NewController(t)
	tags := mock_store.NewMockTagsObjMapperInterface(ctrl)
	store.Tags = tags
	defer func() {
		store.Tags = nil
		ctrl.Finish()
	}()

	tags.EXPECT().ReplaceForEvent(event, oldTag, newTag).Return(3, nil)

	s := makeTestSession("sid1", types.Uid(1))
	s.subs[topicName] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:     "123",
		Topic:  topicName,
		What:   "tag.replace",
		Tag:    &MsgTag{Id: oldTag.String()},
		NewTag: &MsgTag{Id: newTag.String()},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	ack := r.messages[0].(*ServerComMessage)
	params, ok := ack.Ctrl.Params.(map[string]int)
	if !ok || params["count"] != 3 {
		t.Errorf("Ack params: expected count 3, got %v", ack.Ctrl.Params)
	}

	if len(hub.route) != 1 {
		t.Fatalf("Routed messages: expected 1, received %d.", len(hub.route))
	}
	routed := <-hub.route
	if routed.Data == nil || routed.Data.What != "tag.replace" {
		t.Fatalf("Routed message: expected {data tag.replace}, got %s", routed.describe())
	}
	if routed.Data.Tag == nil || routed.Data.Tag.Id != oldTag.String() ||
		routed.Data.NewTag == nil || routed.Data.NewTag.Id != newTag.String() {
		t.Error("Routed message expected to carry both tag ids.")
	}
}

func TestMutateTagUpdateNormalizesName(t *testing.T) {
	event := types.Uid(42)
	topicName := event.LogName()

	ctrl := gomock.NewController(t)
	tags := mock_store.NewMockTagsObjMapperInterface(ctrl)
	store.Tags = tags
	defer func() {
		store.Tags = nil
		ctrl.Finish()
	}()

	tags.EXPECT().Upsert(gomock.Any()).DoAndReturn(
		func(tag *types.Tag) error {
			if tag.Name != "rubber duck" {
				t.Errorf("Tag name: expected 'rubber duck', got '%s'", tag.Name)
			}
			tag.SetUid(types.Uid(7))
			return nil
		})

	s := makeTestSession("sid1", types.Uid(1))
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

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: topicName,
		What:  "tag.update",
		Tag:   &MsgTag{Name: "  Rubber Duck "},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	if len(hub.route) != 1 {
		t.Fatalf("Routed messages: expected 1, received %d.", len(hub.route))
	}
	routed := <-hub.route
	if routed.Data == nil || routed.Data.Tag == nil || routed.Data.Tag.Name != "rubber duck" {
		t.Errorf("Routed message expected to carry the normalized tag, got %s", routed.describe())
	}
}

func TestMutateAdmUnknownOperation(t *testing.T) {
	s := makeTestSession("sid1", types.Uid(1))
	s.subs["admusers"] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	// event.upsert belongs to admevents, not admusers.
	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: "admusers",
		What:  "event.upsert",
		Event: &MsgEvent{Name: "Desert Bus 2026"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestMutateAdmStaleAdminBit(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mock_store.NewMockEventsObjMapperInterface(ctrl)
	store.Events = events
	defer func() {
		store.Events = nil
		ctrl.Finish()
	}()

	// Anything below Supervisor on an admin topic means the account lost its
	// admin bit after subscribing.
	s := makeTestSession("sid1", types.Uid(1))
	s.subs["admevents"] = &Subscription{level: types.PermissionView}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: "admevents",
		What:  "event.upsert",
		Event: &MsgEvent{Name: "Desert Bus 2026"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
}

func TestMutateAdmEventUpsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mock_store.NewMockEventsObjMapperInterface(ctrl)
	store.Events = events
	defer func() {
		store.Events = nil
		ctrl.Finish()
	}()

	// The mapper returns the record read back after the write; the submitted
	// struct is never touched. The ack and broadcast must use the read-back.
	assigned := types.Uid(77)
	events.EXPECT().Upsert(gomock.Any()).DoAndReturn(
		func(ev *types.Event) (*types.Event, error) {
			if ev.Name != "Desert Bus 2026" {
				t.Errorf("Event name: expected 'Desert Bus 2026', got '%s'", ev.Name)
			}
			canonical := &types.Event{Name: ev.Name, StartAt: ev.StartAt}
			canonical.SetUid(assigned)
			canonical.InitTimes()
			return canonical, nil
		})

	s := makeTestSession("sid1", types.Uid(1))
	s.subs["admevents"] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: "admevents",
		What:  "event.upsert",
		Event: &MsgEvent{Name: "Desert Bus 2026"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	ack := r.messages[0].(*ServerComMessage)
	params, ok := ack.Ctrl.Params.(map[string]string)
	if !ok || params["id"] != assigned.String() {
		t.Errorf("Ack params: expected id '%s', got %v", assigned.String(), ack.Ctrl.Params)
	}

	if len(hub.route) != 1 {
		t.Fatalf("Routed messages: expected 1, received %d.", len(hub.route))
	}
	routed := <-hub.route
	if routed.RcptTo != "admevents" {
		t.Errorf("Routed message addressee: expected 'admevents', got '%s'", routed.RcptTo)
	}
	if routed.Data == nil || routed.Data.Event == nil || routed.Data.Event.Id != assigned.String() {
		t.Errorf("Routed message expected to carry the stored event, got %s", routed.describe())
	}
}

func TestMutateAdmTabUpsert(t *testing.T) {
	event := types.Uid(42)

	ctrl := gomock.NewController(t)
	tabs := mock_store.NewMockTabsObjMapperInterface(ctrl)
	store.Tabs = tabs
	defer func() {
		store.Tabs = nil
		ctrl.Finish()
	}()

	assigned := types.Uid(301)
	tabs.EXPECT().Upsert(gomock.Any()).DoAndReturn(
		func(tab *types.Tab) (*types.Tab, error) {
			if tab.Event != event {
				t.Errorf("Tab event: expected %s, got %s", event.String(), tab.Event.String())
			}
			if tab.Name != "Hour 37" {
				t.Errorf("Tab name: expected 'Hour 37', got '%s'", tab.Name)
			}
			canonical := &types.Tab{Event: tab.Event, Name: tab.Name, StartAt: tab.StartAt}
			canonical.SetUid(assigned)
			canonical.InitTimes()
			return canonical, nil
		})

	s := makeTestSession("sid1", types.Uid(1))
	s.subs["admtabs"] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: "admtabs",
		What:  "tab.upsert",
		Tab:   &MsgTab{Event: event.String(), Name: "Hour 37"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	ack := r.messages[0].(*ServerComMessage)
	params, ok := ack.Ctrl.Params.(map[string]string)
	if !ok || params["id"] != assigned.String() {
		t.Errorf("Ack params: expected id '%s', got %v", assigned.String(), ack.Ctrl.Params)
	}

	if len(hub.route) != 1 {
		t.Fatalf("Routed messages: expected 1, received %d.", len(hub.route))
	}
	routed := <-hub.route
	if routed.Data == nil || routed.Data.Tab == nil || routed.Data.Tab.Id != assigned.String() {
		t.Errorf("Routed message expected to carry the stored tab, got %s", routed.describe())
	}
}

func TestMutateAdmTabUpsertNoEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	tabs := mock_store.NewMockTabsObjMapperInterface(ctrl)
	store.Tabs = tabs
	defer func() {
		store.Tabs = nil
		ctrl.Finish()
	}()

	s := makeTestSession("sid1", types.Uid(1))
	s.subs["admtabs"] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	// A tab is always scoped to an event.
	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: "admtabs",
		What:  "tab.upsert",
		Tab:   &MsgTab{Name: "Hour 37"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestMutateAdmPageDelete(t *testing.T) {
	page := types.Uid(15)

	ctrl := gomock.NewController(t)
	pages := mock_store.NewMockPagesObjMapperInterface(ctrl)
	store.Pages = pages
	defer func() {
		store.Pages = nil
		ctrl.Finish()
	}()

	pages.EXPECT().Delete(page).Return(nil)

	s := makeTestSession("sid1", types.Uid(1))
	s.subs["admpages"] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: "admpages",
		What:  "page.delete",
		Page:  &MsgPage{Id: page.String()},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	if len(hub.route) != 1 {
		t.Fatalf("Routed messages: expected 1, received %d.", len(hub.route))
	}
	routed := <-hub.route
	if routed.Data == nil || routed.Data.Page == nil || routed.Data.Page.Id != page.String() {
		t.Errorf("Routed message expected to carry the deleted page id, got %s", routed.describe())
	}
}

func TestMutateAdmAppResetKey(t *testing.T) {
	app := types.Uid(23)

	ctrl := gomock.NewController(t)
	apps := mock_store.NewMockAppsObjMapperInterface(ctrl)
	store.Apps = apps
	defer func() {
		store.Apps = nil
		ctrl.Finish()
	}()

	apps.EXPECT().ResetKey(app).Return("fresh-auth-key", nil)

	s := makeTestSession("sid1", types.Uid(1))
	s.subs["admapps"] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: "admapps",
		What:  "app.resetkey",
		App:   &MsgApp{Id: app.String()},
	}})
	close(s.send)
	wg.Wait()

	// The fresh key goes only to the requesting session.
	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	ack := r.messages[0].(*ServerComMessage)
	params, ok := ack.Ctrl.Params.(map[string]string)
	if !ok || params["key"] != "fresh-auth-key" {
		t.Errorf("Ack params: expected the fresh key, got %v", ack.Ctrl.Params)
	}

	if len(hub.route) != 1 {
		t.Fatalf("Routed messages: expected 1, received %d.", len(hub.route))
	}
	routed := <-hub.route
	if routed.Data == nil || routed.Data.App == nil || routed.Data.App.Id != app.String() {
		t.Fatalf("Routed message expected to carry the app id, got %s", routed.describe())
	}
}

func TestMutateAdmGrantSet(t *testing.T) {
	group := types.Uid(5)
	event := types.Uid(42)

	ctrl := gomock.NewController(t)
	groups := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	store.Groups = groups
	defer func() {
		store.Groups = nil
		ctrl.Finish()
	}()

	groups.EXPECT().GrantSet(gomock.Any()).DoAndReturn(
		func(grant *types.GroupEventGrant) error {
			if grant.Group != group || grant.Event != event {
				t.Error("Grant expected to reference the submitted group and event.")
			}
			if grant.Level != types.PermissionEdit {
				t.Errorf("Grant level: expected edit, got %s", grant.Level.String())
			}
			return nil
		})

	s := makeTestSession("sid1", types.Uid(1))
	s.subs["admgroupevents"] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	hub := &Hub{route: make(chan *ServerComMessage, 10)}
	globals.hub = hub
	defer func() {
		globals.hub = nil
	}()

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: "admgroupevents",
		What:  "grant.set",
		Grant: &MsgGrant{Group: group.String(), Event: event.String(), Level: "edit"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	if len(hub.route) != 1 {
		t.Fatalf("Routed messages: expected 1, received %d.", len(hub.route))
	}
	routed := <-hub.route
	if routed.Data == nil || routed.Data.Grant == nil || routed.Data.Grant.Level != "edit" {
		t.Errorf("Routed message expected to carry the grant, got %s", routed.describe())
	}
}

func TestMutateAdmGrantSetMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	groups := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	store.Groups = groups
	defer func() {
		store.Groups = nil
		ctrl.Finish()
	}()

	s := makeTestSession("sid1", types.Uid(1))
	s.subs["admgroupevents"] = &Subscription{level: types.PermissionSupervisor}
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Mut: &MsgClientMut{
		Id:    "123",
		Topic: "admgroupevents",
		What:  "grant.set",
		Grant: &MsgGrant{Group: "", Event: types.Uid(42).String(), Level: "edit"},
	}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}
