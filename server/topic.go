/******************************************************************************
 *
 *  Description :
 *    An isolated broadcast channel for one event log or one administrative
 *    dataset. There is no communication across topics.
 *
 *****************************************************************************/

package main

import (
	"sync/atomic"
	"time"

	"github.com/livelog/livelog/server/logs"
	"github.com/livelog/livelog/server/store/types"
)

// Topic is an isolated broadcast channel.
type Topic struct {
	// Name of the topic: "log" prefix plus event id, or one of the fixed
	// administrative names.
	name string

	// Topic category.
	cat types.TopicCat

	// Event the topic belongs to. Zero for administrative topics.
	event types.Uid

	// Sessions attached to this topic. Accessed only by the topic goroutine.
	sessions map[*Session]perSessionData

	// Number of attached sessions. Updated by the topic goroutine, read by
	// the hub when deciding whether a teardown request is still valid.
	nsubs int32

	// Inbound messages to fan out to the attached sessions, buffered = 256.
	broadcast chan *ServerComMessage
	// Subscribe requests from sessions, buffered = 256.
	reg chan *sessionJoin
	// Unsubscribe requests from sessions, buffered = 256.
	unreg chan *sessionLeave
	// Request to terminate the topic, buffered = 1.
	exit chan *topicShutdown
}

// perSessionData is the registry entry of one attached session.
type perSessionData struct {
	// ID of the subscribed user.
	uid types.Uid
	// Permission level cached at subscribe time. A grant change takes
	// effect on the next subscribe.
	level types.PermissionLevel
	// Number of times the session subscribed to this topic. The entry is
	// removed when the count drops to zero.
	count int
}

// Reasons why topic is being shut down.
const (
	// StopNone: no reason given/default, the last subscriber left.
	StopNone = iota
	// StopShutdown: terminated due to system shutdown.
	StopShutdown
)

// Topic shutdown
type topicShutdown struct {
	// Channel to report back completion of topic shutdown. Could be nil.
	done chan<- bool
	// Why the topic is being stopped.
	reason int
}

func (t *Topic) run(hub *Hub) {
	for {
		select {
		case sreg := <-t.reg:
			t.handleJoin(sreg)

		case leave := <-t.unreg:
			t.handleLeave(hub, leave)

		case msg := <-t.broadcast:
			t.handleBroadcast(hub, msg)

		case sd := <-t.exit:
			t.handleShutdown(hub, sd)
			return
		}
	}
}

// handleJoin attaches a session to the topic or refreshes an existing
// attachment. The snapshot was built by the session before registration, so
// no broadcast can reach the session ahead of it.
func (t *Topic) handleJoin(sreg *sessionJoin) {
	now := types.TimeNow()

	if pssd, ok := t.sessions[sreg.sess]; ok {
		// Repeated subscribe from an attached session: bump the use count
		// and refresh the cached permission.
		pssd.count++
		pssd.level = sreg.level
		t.sessions[sreg.sess] = pssd
	} else {
		t.sessions[sreg.sess] = perSessionData{uid: sreg.sess.uid, level: sreg.level, count: 1}
		atomic.AddInt32(&t.nsubs, 1)
		statsInc("LiveSubscriptions", 1)
		statsInc("TotalSubscriptions", 1)
	}
	sreg.sess.addSub(t.name, &Subscription{broadcast: t.broadcast, done: t.unreg, level: sreg.level})

	sreg.sess.queueOut(NoErr(sreg.pkt.Id, sreg.pkt.Topic, now))
	sreg.sess.queueOut(sreg.snap)
}

// handleLeave detaches a session, either at the client's request or forced
// when the connection is gone.
func (t *Topic) handleLeave(hub *Hub, leave *sessionLeave) {
	now := types.TimeNow()
	pssd, attached := t.sessions[leave.sess]
	removed := false

	if leave.pkt == nil {
		// Connection lost: remove the registry entry regardless of the use
		// count. The session has already dropped its subscription handles.
		if attached {
			delete(t.sessions, leave.sess)
			removed = true
		}
	} else if !attached {
		leave.sess.queueOut(ErrNotSubscribed(leave.pkt.Id, leave.pkt.Topic, now))
		return
	} else {
		pssd.count--
		if pssd.count > 0 {
			t.sessions[leave.sess] = pssd
		} else {
			delete(t.sessions, leave.sess)
			leave.sess.delSub(t.name)
			removed = true
		}
		leave.sess.queueOut(NoErr(leave.pkt.Id, leave.pkt.Topic, now))
	}

	if removed {
		atomic.AddInt32(&t.nsubs, -1)
		statsInc("LiveSubscriptions", -1)
	}

	if removed && len(t.sessions) == 0 {
		// Registry is empty, ask the hub to take the topic offline.
		hub.unreg <- &topicUnreg{rcptTo: t.name}
	}
}

// handleBroadcast fans a message out to every attached session.
func (t *Topic) handleBroadcast(hub *Hub, msg *ServerComMessage) {
	statsInc("BroadcastsTotal", 1)

	var dead []*Session
	for sess := range t.sessions {
		if msg.SkipSid != "" && sess.sid == msg.SkipSid {
			continue
		}
		if sess.queueOut(msg) {
			statsInc("DeliveriesTotal", 1)
		} else {
			logs.Warn.Printf("topic[%s]: connection stuck, detaching %s", t.name, sess.sid)
			dead = append(dead, sess)
		}
	}

	// Prune subscribers which could not accept the frame.
	for _, sess := range dead {
		delete(t.sessions, sess)
		atomic.AddInt32(&t.nsubs, -1)
		statsInc("LiveSubscriptions", -1)
		statsInc("DroppedDeliveries", 1)
		select {
		case sess.detach <- t.name:
		default:
		}
	}

	if len(dead) > 0 && len(t.sessions) == 0 {
		hub.unreg <- &topicUnreg{rcptTo: t.name}
	}
}

// handleShutdown winds the topic down. The hub has already removed it from
// the routing map, so nothing new arrives after the queues drain.
func (t *Topic) handleShutdown(hub *Hub, sd *topicShutdown) {
	// Deliver whatever was queued before the shutdown was signaled.
	for len(t.broadcast) > 0 {
		t.handleBroadcast(hub, <-t.broadcast)
	}

	if sd.reason != StopShutdown {
		// Joins which raced the teardown restart on a fresh topic.
		for len(t.reg) > 0 {
			sreg := <-t.reg
			hub.join <- sreg
		}
	}

	// Notify and detach whoever is still attached. During a system shutdown
	// the session store delivers a single shutdown notice per session
	// instead.
	now := types.TimeNow()
	for sess := range t.sessions {
		if sd.reason != StopShutdown {
			sess.queueOut(NoErrUnsubscribed("", t.name, now))
		}
		select {
		case sess.detach <- t.name:
		default:
		}
	}
	if n := len(t.sessions); n > 0 {
		statsInc("LiveSubscriptions", -n)
	}

	statsInc("LiveTopics", -1)

	// Report completion back to sender, if 'done' is not nil.
	if sd.done != nil {
		sd.done <- true
	}
}

// subsCount reports the number of attached sessions. Safe to call from
// outside the topic goroutine.
func (t *Topic) subsCount() int {
	return int(atomic.LoadInt32(&t.nsubs))
}

// decodeStoreError translates a storage error into an appropriate {ctrl}
// message to be sent to the client.
func decodeStoreError(err error, id, topic string, ts time.Time) *ServerComMessage {
	if err == nil {
		return NoErr(id, topic, ts)
	}

	storeErr, ok := err.(types.StoreError)
	if !ok {
		return ErrUnknown(id, topic, ts)
	}

	switch storeErr {
	case types.ErrMalformed, types.ErrDuplicate, types.ErrUnsupported:
		return ErrMalformed(id, topic, ts)
	case types.ErrNotFound:
		return ErrNotFound(id, topic, ts)
	case types.ErrPermissionDenied:
		return ErrPermissionDenied(id, topic, ts)
	case types.ErrNotInitialized:
		return ErrServiceUnavailable(id, topic, ts)
	default:
		return ErrUnknown(id, topic, ts)
	}
}
