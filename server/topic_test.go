package main

import (
	"fmt"
	"sync"
	"testing"

	"github.com/livelog/livelog/server/store/types"
)

type Responses struct {
	messages []interface{}
}

func (s *Session) testWriteLoop(results *Responses, wg *sync.WaitGroup) {
	for msg := range s.send {
		results.messages = append(results.messages, msg)
	}
	wg.Done()
}

func (h *Hub) testHubLoop(t *testing.T, results map[string][]*ServerComMessage, done chan bool) {
	for msg := range h.route {
		if msg.RcptTo == "" {
			t.Error("Hub.route received a message without addressee.")
			break
		}
		results[msg.RcptTo] = append(results[msg.RcptTo], msg)
	}
	done <- true
}

func makeTestTopic(event types.Uid) *Topic {
	return &Topic{
		name:      event.LogName(),
		cat:       types.TopicCatLog,
		event:     event,
		sessions:  make(map[*Session]perSessionData),
		broadcast: make(chan *ServerComMessage, 16),
		reg:       make(chan *sessionJoin, 16),
		unreg:     make(chan *sessionLeave, 16),
		exit:      make(chan *topicShutdown, 1),
	}
}

func makeTestSession(sid string, uid types.Uid) *Session {
	return &Session{
		sid:    sid,
		uid:    uid,
		send:   make(chan interface{}, 10),
		detach: make(chan string, 10),
		subs:   make(map[string]*Subscription),
	}
}

func TestHandleJoinNewSession(t *testing.T) {
	event := types.Uid(42)
	topic := makeTestTopic(event)

	s := makeTestSession("sid1", types.Uid(1))
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	pkt := &ClientComMessage{Id: "123", Topic: topic.name, Timestamp: types.TimeNow()}
	snap := &ServerComMessage{Snap: &MsgServerSnap{Topic: topic.name}}
	topic.handleJoin(&sessionJoin{pkt: pkt, sess: s, level: types.PermissionEdit, snap: snap})

	close(s.send)
	wg.Wait()

	if len(topic.sessions) != 1 {
		t.Fatalf("Topic sessions: expected 1, found %d", len(topic.sessions))
	}
	pssd := topic.sessions[s]
	if pssd.count != 1 {
		t.Errorf("Use count: expected 1, found %d", pssd.count)
	}
	if pssd.level != types.PermissionEdit {
		t.Errorf("Cached level: expected edit, found %s", pssd.level.String())
	}
	if topic.subsCount() != 1 {
		t.Errorf("subsCount: expected 1, found %d", topic.subsCount())
	}
	if lvl, ok := s.subLevel(topic.name); !ok || lvl != types.PermissionEdit {
		t.Errorf("Session subscription: expected edit/true, found %s/%t", lvl.String(), ok)
	}
	if len(r.messages) != 2 {
		t.Fatalf("Responses: expected 2, received %d", len(r.messages))
	}
	ack := r.messages[0].(*ServerComMessage)
	if ack.Ctrl == nil || ack.Ctrl.Code != 200 {
		t.Errorf("Response 0: expected ctrl 200, got %s", ack.describe())
	}
	if ack.Ctrl != nil && ack.Ctrl.Id != "123" {
		t.Errorf("Response 0 id: expected '123', got '%s'", ack.Ctrl.Id)
	}
	if r.messages[1].(*ServerComMessage) != snap {
		t.Error("Response 1: expected the prebuilt snapshot frame.")
	}
}

func TestHandleJoinRepeated(t *testing.T) {
	event := types.Uid(42)
	topic := makeTestTopic(event)

	s := makeTestSession("sid1", types.Uid(1))
	topic.sessions[s] = perSessionData{uid: s.uid, level: types.PermissionView, count: 1}
	topic.nsubs = 1
	s.subs[topic.name] = &Subscription{broadcast: topic.broadcast, done: topic.unreg, level: types.PermissionView}

	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	pkt := &ClientComMessage{Id: "124", Topic: topic.name, Timestamp: types.TimeNow()}
	snap := &ServerComMessage{Snap: &MsgServerSnap{Topic: topic.name}}
	topic.handleJoin(&sessionJoin{pkt: pkt, sess: s, level: types.PermissionSupervisor, snap: snap})

	close(s.send)
	wg.Wait()

	if len(topic.sessions) != 1 {
		t.Fatalf("Topic sessions: expected 1, found %d", len(topic.sessions))
	}
	pssd := topic.sessions[s]
	if pssd.count != 2 {
		t.Errorf("Use count: expected 2, found %d", pssd.count)
	}
	if pssd.level != types.PermissionSupervisor {
		t.Errorf("Cached level: expected supervisor, found %s", pssd.level.String())
	}
	// The registry entry is reused, not duplicated.
	if topic.subsCount() != 1 {
		t.Errorf("subsCount: expected 1, found %d", topic.subsCount())
	}
	if lvl, _ := s.subLevel(topic.name); lvl != types.PermissionSupervisor {
		t.Errorf("Session cached level not refreshed: found %s", lvl.String())
	}
	if len(r.messages) != 2 {
		t.Fatalf("Responses: expected 2, received %d", len(r.messages))
	}
}

func TestHandleLeaveUseCount(t *testing.T) {
	event := types.Uid(42)
	topic := makeTestTopic(event)
	hub := &Hub{unreg: make(chan *topicUnreg, 10)}

	s := makeTestSession("sid1", types.Uid(1))
	topic.sessions[s] = perSessionData{uid: s.uid, level: types.PermissionEdit, count: 2}
	topic.nsubs = 1
	s.subs[topic.name] = &Subscription{broadcast: topic.broadcast, done: topic.unreg, level: types.PermissionEdit}

	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	pkt := &ClientComMessage{Id: "125", Topic: topic.name, Timestamp: types.TimeNow()}
	topic.handleLeave(hub, &sessionLeave{pkt: pkt, sess: s})

	if pssd := topic.sessions[s]; pssd.count != 1 {
		t.Errorf("Use count after first leave: expected 1, found %d", pssd.count)
	}
	if len(hub.unreg) != 0 {
		t.Error("Topic must not be unregistered while a use remains.")
	}
	if _, ok := s.subLevel(topic.name); !ok {
		t.Error("Session handle must survive while a use remains.")
	}

	topic.handleLeave(hub, &sessionLeave{pkt: pkt, sess: s})

	close(s.send)
	wg.Wait()

	if len(topic.sessions) != 0 {
		t.Errorf("Topic sessions after final leave: expected 0, found %d", len(topic.sessions))
	}
	if _, ok := s.subLevel(topic.name); ok {
		t.Error("Session handle expected to be dropped on final leave.")
	}
	if topic.subsCount() != 0 {
		t.Errorf("subsCount: expected 0, found %d", topic.subsCount())
	}
	if len(hub.unreg) != 1 {
		t.Fatalf("Hub unreg requests: expected 1, received %d", len(hub.unreg))
	}
	if req := <-hub.unreg; req.rcptTo != topic.name {
		t.Errorf("Unreg request: expected '%s', got '%s'", topic.name, req.rcptTo)
	}
	if len(r.messages) != 2 {
		t.Fatalf("Responses: expected 2, received %d", len(r.messages))
	}
	for i, m := range r.messages {
		resp := m.(*ServerComMessage)
		if resp.Ctrl == nil || resp.Ctrl.Code != 200 {
			t.Errorf("Response %d: expected ctrl 200, got %s", i, resp.describe())
		}
	}
}

func TestHandleLeaveNotAttached(t *testing.T) {
	event := types.Uid(42)
	topic := makeTestTopic(event)
	hub := &Hub{unreg: make(chan *topicUnreg, 10)}

	s := makeTestSession("sid1", types.Uid(1))
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	pkt := &ClientComMessage{Id: "126", Topic: topic.name, Timestamp: types.TimeNow()}
	topic.handleLeave(hub, &sessionLeave{pkt: pkt, sess: s})

	close(s.send)
	wg.Wait()

	if len(r.messages) != 1 {
		t.Fatalf("Responses: expected 1, received %d", len(r.messages))
	}
	resp := r.messages[0].(*ServerComMessage)
	if resp.Ctrl == nil || resp.Ctrl.Code != 409 {
		t.Errorf("Response: expected ctrl 409, got %s", resp.describe())
	}
	if len(hub.unreg) != 0 {
		t.Error("Hub unreg: no request expected.")
	}
}

func TestHandleLeaveConnectionLost(t *testing.T) {
	event := types.Uid(42)
	topic := makeTestTopic(event)
	hub := &Hub{unreg: make(chan *topicUnreg, 10)}

	s := makeTestSession("sid1", types.Uid(1))
	topic.sessions[s] = perSessionData{uid: s.uid, level: types.PermissionEdit, count: 3}
	topic.nsubs = 1

	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	// Forced detach overrides the use count.
	topic.handleLeave(hub, &sessionLeave{sess: s})

	close(s.send)
	wg.Wait()

	if len(topic.sessions) != 0 {
		t.Errorf("Topic sessions: expected 0, found %d", len(topic.sessions))
	}
	if len(r.messages) != 0 {
		t.Errorf("Responses: expected 0, received %d", len(r.messages))
	}
	if len(hub.unreg) != 1 {
		t.Errorf("Hub unreg requests: expected 1, received %d", len(hub.unreg))
	}
}

func TestHandleBroadcastFanout(t *testing.T) {
	event := types.Uid(42)
	topic := makeTestTopic(event)
	hub := &Hub{unreg: make(chan *topicUnreg, 10)}

	numSess := 3
	ss := make([]*Session, numSess)
	results := make([]*Responses, numSess)
	wg := sync.WaitGroup{}
	for i := range ss {
		ss[i] = makeTestSession(fmt.Sprintf("sid%d", i), types.Uid(i+1))
		topic.sessions[ss[i]] = perSessionData{uid: ss[i].uid, level: types.PermissionView, count: 1}
		results[i] = &Responses{}
		wg.Add(1)
		go ss[i].testWriteLoop(results[i], &wg)
	}
	topic.nsubs = int32(numSess)

	msg := &ServerComMessage{
		Data: &MsgServerData{
			Topic:     topic.name,
			From:      ss[0].uid.String(),
			What:      "entry.new",
			Entry:     &MsgLogEntry{Id: types.Uid(900).String()},
			Timestamp: types.TimeNow(),
		},
		RcptTo:  topic.name,
		SkipSid: ss[0].sid,
	}
	topic.handleBroadcast(hub, msg)

	for _, s := range ss {
		close(s.send)
	}
	wg.Wait()

	if len(results[0].messages) != 0 {
		t.Errorf("Skipped session: expected 0 messages, received %d", len(results[0].messages))
	}
	for i := 1; i < numSess; i++ {
		if len(results[i].messages) != 1 {
			t.Fatalf("Session %d: expected 1 message, received %d", i, len(results[i].messages))
		}
		resp := results[i].messages[0].(*ServerComMessage)
		if resp.Data == nil || resp.Data.What != "entry.new" {
			t.Errorf("Session %d: expected {data entry.new}, got %s", i, resp.describe())
		}
	}
	if len(hub.unreg) != 0 {
		t.Error("Hub unreg: no request expected.")
	}
}

func TestHandleBroadcastDeadSession(t *testing.T) {
	event := types.Uid(42)
	topic := makeTestTopic(event)
	hub := &Hub{unreg: make(chan *topicUnreg, 10)}

	live := makeTestSession("sid-live", types.Uid(1))
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go live.testWriteLoop(&r, &wg)

	// Unbuffered send channel with no reader: queueOut times out.
	dead := makeTestSession("sid-dead", types.Uid(2))
	dead.send = make(chan interface{})

	topic.sessions[live] = perSessionData{uid: live.uid, level: types.PermissionView, count: 1}
	topic.sessions[dead] = perSessionData{uid: dead.uid, level: types.PermissionView, count: 1}
	topic.nsubs = 2

	msg := &ServerComMessage{
		Data: &MsgServerData{
			Topic:     topic.name,
			What:      "entry.update",
			Entry:     &MsgLogEntry{Id: types.Uid(900).String()},
			Timestamp: types.TimeNow(),
		},
		RcptTo: topic.name,
	}
	topic.handleBroadcast(hub, msg)

	close(live.send)
	wg.Wait()

	if len(r.messages) != 1 {
		t.Errorf("Live session: expected 1 message, received %d", len(r.messages))
	}
	if len(topic.sessions) != 1 {
		t.Fatalf("Topic sessions: expected 1 after pruning, found %d", len(topic.sessions))
	}
	if _, ok := topic.sessions[live]; !ok {
		t.Error("The live session must survive the pruning.")
	}
	if topic.subsCount() != 1 {
		t.Errorf("subsCount: expected 1, found %d", topic.subsCount())
	}
	select {
	case name := <-dead.detach:
		if name != topic.name {
			t.Errorf("Detach signal: expected '%s', got '%s'", topic.name, name)
		}
	default:
		t.Error("Dead session expected to receive a detach signal.")
	}
	if len(hub.unreg) != 0 {
		t.Error("Hub unreg: no request expected while a session remains.")
	}
}

func TestHandleShutdownDrainsAndNotifies(t *testing.T) {
	event := types.Uid(42)
	topic := makeTestTopic(event)
	hub := &Hub{unreg: make(chan *topicUnreg, 10), join: make(chan *sessionJoin, 10)}

	s := makeTestSession("sid1", types.Uid(1))
	topic.sessions[s] = perSessionData{uid: s.uid, level: types.PermissionView, count: 1}
	topic.nsubs = 1

	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	// A frame queued before the teardown must still be delivered.
	topic.broadcast <- &ServerComMessage{
		Data:   &MsgServerData{Topic: topic.name, What: "tag.update", Tag: &MsgTag{Name: "crash"}},
		RcptTo: topic.name,
	}

	done := make(chan bool, 1)
	topic.handleShutdown(hub, &topicShutdown{done: done, reason: StopNone})

	close(s.send)
	wg.Wait()

	if !<-done {
		t.Error("Shutdown completion expected to be reported.")
	}
	if len(r.messages) != 2 {
		t.Fatalf("Responses: expected 2, received %d", len(r.messages))
	}
	if resp := r.messages[0].(*ServerComMessage); resp.Data == nil || resp.Data.What != "tag.update" {
		t.Errorf("Response 0: expected the queued {data}, got %s", resp.describe())
	}
	if resp := r.messages[1].(*ServerComMessage); resp.Ctrl == nil || resp.Ctrl.Code != 205 {
		t.Errorf("Response 1: expected ctrl 205, got %s", resp.describe())
	}
	select {
	case name := <-s.detach:
		if name != topic.name {
			t.Errorf("Detach signal: expected '%s', got '%s'", topic.name, name)
		}
	default:
		t.Error("Session expected to receive a detach signal.")
	}
}

func TestHandleShutdownSystemWide(t *testing.T) {
	event := types.Uid(42)
	topic := makeTestTopic(event)
	hub := &Hub{unreg: make(chan *topicUnreg, 10), join: make(chan *sessionJoin, 10)}

	s := makeTestSession("sid1", types.Uid(1))
	topic.sessions[s] = perSessionData{uid: s.uid, level: types.PermissionView, count: 1}
	topic.nsubs = 1

	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	// A join racing the system shutdown is dropped, not requeued.
	topic.reg <- &sessionJoin{sess: s}

	done := make(chan bool, 1)
	topic.handleShutdown(hub, &topicShutdown{done: done, reason: StopShutdown})

	close(s.send)
	wg.Wait()
	<-done

	// The session store sends the single shutdown notice instead.
	if len(r.messages) != 0 {
		t.Errorf("Responses: expected 0, received %d", len(r.messages))
	}
	if len(hub.join) != 0 {
		t.Errorf("Hub join requests: expected 0, received %d", len(hub.join))
	}
}

func TestDecodeStoreError(t *testing.T) {
	now := types.TimeNow()
	cases := []struct {
		err  error
		code int
	}{
		{nil, 200},
		{types.ErrMalformed, 400},
		{types.ErrDuplicate, 400},
		{types.ErrUnsupported, 400},
		{types.ErrNotFound, 404},
		{types.ErrPermissionDenied, 403},
		{types.ErrNotInitialized, 503},
		{types.ErrInternal, 500},
		{fmt.Errorf("plain error"), 500},
	}
	for _, tc := range cases {
		resp := decodeStoreError(tc.err, "id1", "logtest", now)
		if resp.Ctrl == nil {
			t.Fatalf("decodeStoreError(%v): expected a ctrl message", tc.err)
		}
		if resp.Ctrl.Code != tc.code {
			t.Errorf("decodeStoreError(%v): expected %d, got %d", tc.err, tc.code, resp.Ctrl.Code)
		}
	}
}
