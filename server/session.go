/******************************************************************************
 *
 *  Description :
 *
 *  Handling of user sessions/connections. One user may have multiple
 *  sessions. Each session may be attached to multiple topics.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/livelog/livelog/server/logs"
	"github.com/livelog/livelog/server/store/types"
)

// Session represents a single websocket connection. A user may have multiple
// sessions.
type Session struct {
	// Websocket connection.
	ws *websocket.Conn

	// IP address of the client.
	remoteAddr string

	// ID of the authenticated user.
	uid types.Uid

	// Public profile of the authenticated user, fetched when the connection
	// was authorized. Attached to typing notifications.
	usr *types.User

	// Outbound messages, buffered = 256. Carries *ServerComMessage frames,
	// serialized by the write loop.
	send chan interface{}

	// Channel for shutting down the session, buffer 1.
	// Content in the same format as for 'send'.
	stop chan interface{}

	// detach - channel for detaching session from topic, buffered = 64.
	detach chan string

	// Map of topic subscriptions, indexed by topic name.
	// Don't access directly. Use getters/setters.
	subs map[string]*Subscription
	// Mutex for subs access: both topic go routines and the network
	// goroutines access subs concurrently.
	subsLock sync.RWMutex

	// Session ID.
	sid string
}

// Subscription is the session's handle on an attached topic.
type Subscription struct {
	// Channel to send broadcasts to the topic, copy of Topic.broadcast.
	broadcast chan<- *ServerComMessage

	// Session sends a signal to the topic when it detaches. This is a copy
	// of Topic.unreg.
	done chan<- *sessionLeave

	// Permission level cached at subscribe time, refreshed on repeated
	// subscribes. Mutation checks use this value, never a fresh store read.
	level types.PermissionLevel
}

// addSub attaches a subscription handle to the session. The topic calls it
// at registration; a repeated subscribe keeps the existing handle and only
// refreshes the cached permission. The use count lives in the topic's
// registry.
func (s *Session) addSub(topic string, sub *Subscription) {
	s.subsLock.Lock()
	defer s.subsLock.Unlock()

	if cur, ok := s.subs[topic]; ok {
		cur.level = sub.level
	} else {
		s.subs[topic] = sub
	}
}

// subLevel reports the cached permission level on the topic and whether the
// session is attached to it at all.
func (s *Session) subLevel(topic string) (types.PermissionLevel, bool) {
	s.subsLock.RLock()
	defer s.subsLock.RUnlock()

	if sub, ok := s.subs[topic]; ok {
		return sub.level, true
	}
	return types.PermissionNone, false
}

func (s *Session) getSub(topic string) *Subscription {
	s.subsLock.RLock()
	defer s.subsLock.RUnlock()

	return s.subs[topic]
}

// delSub drops the subscription handle regardless of the topic-side use
// count. Called by the topic when the count reaches zero and on eviction.
func (s *Session) delSub(topic string) {
	s.subsLock.Lock()
	defer s.subsLock.Unlock()

	delete(s.subs, topic)
}

// unsubAll forces a detach from every attached topic. Safe to call when
// some subscriptions have already lapsed.
func (s *Session) unsubAll() {
	s.subsLock.Lock()
	defer s.subsLock.Unlock()

	for _, sub := range s.subs {
		// sub.done is the same as topic.unreg.
		sub.done <- &sessionLeave{sess: s}
	}
	s.subs = make(map[string]*Subscription)
}

// queueOut attempts to send a ServerComMessage to the session write loop; if
// the send buffer is full, timeout is 50 usec. A false return marks the
// session as unable to accept deliveries.
func (s *Session) queueOut(msg *ServerComMessage) bool {
	if s == nil {
		return true
	}

	select {
	case s.send <- msg:
	case <-time.After(time.Microsecond * 50):
		logs.Warn.Println("s.queueOut: timeout", s.sid)
		return false
	}
	return true
}

func (s *Session) cleanUp() {
	globals.sessionStore.Delete(s)
	s.unsubAll()
}

// Message received, convert bytes to ClientComMessage and dispatch.
func (s *Session) dispatchRaw(raw []byte) {
	var msg ClientComMessage

	toLog := raw
	truncated := ""
	if len(raw) > 512 {
		toLog = raw[:512]
		truncated = "<...>"
	}
	logs.Info.Printf("in: '%s%s' ip='%s' sid='%s' uid='%s'", toLog, truncated, s.remoteAddr, s.sid, s.uid)

	if err := json.Unmarshal(raw, &msg); err != nil {
		logs.Warn.Println("s.dispatch", err, s.sid)
		s.queueOut(ErrMalformed("", "", types.TimeNow()))
		return
	}

	s.dispatch(&msg)
}

func (s *Session) dispatch(msg *ClientComMessage) {
	msg.Timestamp = types.TimeNow()
	msg.AsUser = s.uid.String()

	var handler func(*ClientComMessage)

	switch {
	case msg.Sub != nil:
		handler = s.subscribe
		msg.Id = msg.Sub.Id
		msg.Topic = msg.Sub.Topic

	case msg.Leave != nil:
		handler = s.leave
		msg.Id = msg.Leave.Id
		msg.Topic = msg.Leave.Topic

	case msg.Mut != nil:
		handler = s.mutate
		msg.Id = msg.Mut.Id
		msg.Topic = msg.Mut.Topic

	case msg.Note != nil:
		handler = s.note
		msg.Topic = msg.Note.Topic

	default:
		// Unknown message.
		s.queueOut(ErrMalformed("", "", msg.Timestamp))
		logs.Warn.Println("s.dispatch: unknown message", s.sid)
		return
	}

	if msg.Topic == "" {
		// Notes are fire and forget, everything else gets an error.
		if msg.Note == nil {
			s.queueOut(ErrMalformed(msg.Id, "", msg.Timestamp))
		}
		return
	}

	handler(msg)
}

// subscribe prepares everything the topic needs to attach this session:
// resolves the permission level and reads the initial snapshot, then hands
// the request over to the hub.
func (s *Session) subscribe(msg *ClientComMessage) {
	cat := types.GetTopicCat(msg.Topic)

	var event types.Uid
	switch cat {
	case types.TopicCatLog:
		if event = types.ParseLogName(msg.Topic); event.IsZero() {
			s.queueOut(ErrMalformed(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
	case types.TopicCatAdm:
		if !admTopics[msg.Topic] {
			s.queueOut(ErrTopicNotFound(msg.Id, msg.Topic, msg.Timestamp))
			return
		}
	default:
		// "me" and unrecognized names are not subscribable.
		s.queueOut(ErrTopicNotFound(msg.Id, msg.Topic, msg.Timestamp))
		return
	}

	level, err := topicPermission(cat, event, s.usr)
	if err != nil {
		logs.Info.Println("s.subscribe: rejected", msg.Topic, s.sid, err)
		s.queueOutStoreError(err, msg)
		return
	}

	snap, err := buildSnapshot(msg.Topic, cat, event, level, msg.Timestamp)
	if err != nil {
		logs.Warn.Println("s.subscribe: snapshot failed", msg.Topic, s.sid, err)
		s.queueOutStoreError(err, msg)
		return
	}

	// Hub and topic will send ctrl and snapshot packets back to the session.
	globals.hub.join <- &sessionJoin{pkt: msg, sess: s, level: level, snap: snap}
}

// Leave a topic. The topic owns the use count and sends the reply.
func (s *Session) leave(msg *ClientComMessage) {
	if sub := s.getSub(msg.Topic); sub != nil {
		sub.done <- &sessionLeave{pkt: msg, sess: s}
	} else {
		s.queueOut(ErrNotSubscribed(msg.Id, msg.Topic, msg.Timestamp))
	}
}

// queueOutStoreError reports a storage error to the client, bumping the
// failure counter for backend faults.
func (s *Session) queueOutStoreError(err error, msg *ClientComMessage) {
	resp := decodeStoreError(err, msg.Id, msg.Topic, msg.Timestamp)
	if resp.Ctrl.Code >= 500 {
		statsInc("StoreFailures", 1)
	}
	s.queueOut(resp)
}

func (s *Session) serialize(msg *ServerComMessage) interface{} {
	out, _ := json.Marshal(msg)
	return out
}

// serializeAndUpdateStats serializes the frame and accounts for the control
// code it carries.
func (s *Session) serializeAndUpdateStats(msg *ServerComMessage) interface{} {
	if msg.Ctrl != nil {
		switch {
		case msg.Ctrl.Code < 400:
			statsInc("CtrlCodesTotal2xx", 1)
		case msg.Ctrl.Code < 500:
			statsInc("CtrlCodesTotal4xx", 1)
		default:
			statsInc("CtrlCodesTotal5xx", 1)
		}
	}
	return s.serialize(msg)
}
