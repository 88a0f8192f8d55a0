/******************************************************************************
 *
 *  Description :
 *
 *    Main hub for processing events such as creating/tearing down topics,
 *    routing messages between topics.
 *
 *****************************************************************************/

package main

import (
	"sync"

	"github.com/livelog/livelog/server/logs"
	"github.com/livelog/livelog/server/store/types"
)

// Request to hub to subscribe session to topic.
type sessionJoin struct {
	// Message, containing request details.
	pkt *ClientComMessage
	// Session to attach to topic.
	sess *Session
	// Permission level resolved by the session before the request was made.
	level types.PermissionLevel
	// Initial snapshot frame, built from storage before registration.
	snap *ServerComMessage
}

// Session wants to leave the topic. A nil pkt means the connection is gone
// and the detach is forced.
type sessionLeave struct {
	// Message, containing request details. Nil on forced detach.
	pkt *ClientComMessage
	// Session which initiated the request.
	sess *Session
}

// Request to hub to take a topic offline.
type topicUnreg struct {
	// Routable name of the topic to drop.
	rcptTo string
}

// Hub is the core structure which holds topics.
type Hub struct {
	// Topics indexed by name.
	topics *sync.Map

	// Channel for routing broadcasts to topics, buffered at 4096.
	route chan *ServerComMessage

	// Subscribe session to topic, possibly creating a new topic, buffered at 256.
	join chan *sessionJoin

	// Remove topic from hub, buffered at 256.
	unreg chan *topicUnreg

	// Request to shutdown, unbuffered.
	shutdown chan chan<- bool
}

func (h *Hub) topicGet(name string) *Topic {
	if t, ok := h.topics.Load(name); ok {
		return t.(*Topic)
	}
	return nil
}

func (h *Hub) topicPut(name string, t *Topic) {
	h.topics.Store(name, t)
}

func (h *Hub) topicDel(name string) {
	h.topics.Delete(name)
}

func newHub() *Hub {
	var h = &Hub{
		topics:   &sync.Map{},
		route:    make(chan *ServerComMessage, 4096),
		join:     make(chan *sessionJoin, 256),
		unreg:    make(chan *topicUnreg, 256),
		shutdown: make(chan chan<- bool),
	}

	statsRegisterInt("LiveTopics")
	statsRegisterInt("TotalTopics")
	statsRegisterInt("LiveSessions")
	statsRegisterInt("TotalSessions")
	statsRegisterInt("LiveSubscriptions")
	statsRegisterInt("TotalSubscriptions")

	statsRegisterInt("IncomingMessagesWebsockTotal")
	statsRegisterInt("OutgoingMessagesWebsockTotal")

	statsRegisterInt("BroadcastsTotal")
	statsRegisterInt("DeliveriesTotal")
	statsRegisterInt("DroppedDeliveries")

	statsRegisterInt("MutationsTotal")
	statsRegisterInt("RejectedMutations")
	statsRegisterInt("EphemeralTotal")
	statsRegisterInt("StoreFailures")

	statsRegisterInt("CtrlCodesTotal2xx")
	statsRegisterInt("CtrlCodesTotal4xx")
	statsRegisterInt("CtrlCodesTotal5xx")

	go h.run()

	return h
}

func (h *Hub) run() {
	for {
		select {
		case join := <-h.join:
			// Subscription request. The session has already resolved
			// permissions and built the snapshot; all that is left is to
			// find or create the topic and register the session with it.
			t := h.topicGet(join.pkt.Topic)
			if t == nil {
				t = &Topic{
					name:      join.pkt.Topic,
					sessions:  make(map[*Session]perSessionData),
					broadcast: make(chan *ServerComMessage, 256),
					reg:       make(chan *sessionJoin, 256),
					unreg:     make(chan *sessionLeave, 256),
					exit:      make(chan *topicShutdown, 1),
				}
				if err := initTopic(t); err != nil {
					logs.Warn.Println("hub: failed to initialize topic", join.pkt.Topic, err)
					join.sess.queueOut(ErrTopicNotFound(join.pkt.Id, join.pkt.Topic, types.TimeNow()))
					continue
				}
				h.topicPut(t.name, t)
				statsInc("LiveTopics", 1)
				statsInc("TotalTopics", 1)
				go t.run(h)
			}

			// Topic will cache the permission and deliver the snapshot.
			select {
			case t.reg <- join:
			default:
				join.sess.queueOut(ErrServiceUnavailable(join.pkt.Id, join.pkt.Topic, types.TimeNow()))
				logs.Err.Println("hub: join queue full", join.pkt.Topic, join.sess.sid)
			}

		case msg := <-h.route:
			// Broadcast intended for topic subscribers. A broadcast to a
			// topic with no dispatcher is a correct no-op: nobody is
			// listening.
			if dst := h.topicGet(msg.RcptTo); dst != nil {
				select {
				case dst.broadcast <- msg:
				default:
					logs.Err.Println("hub: topic's broadcast queue is full", dst.name)
				}
			} else {
				logs.Info.Println("hub: dropping broadcast to offline topic", msg.RcptTo)
			}

		case unreg := <-h.unreg:
			// A topic reported its registry empty. Skip the teardown if a
			// subscriber raced in after the report.
			if t := h.topicGet(unreg.rcptTo); t != nil && t.subsCount() == 0 {
				h.topicDel(unreg.rcptTo)
				t.exit <- &topicShutdown{reason: StopNone}
			}

		case hubdone := <-h.shutdown:
			topicsdone := make(chan bool)
			topicCount := 0
			h.topics.Range(func(_, topic interface{}) bool {
				topic.(*Topic).exit <- &topicShutdown{done: topicsdone, reason: StopShutdown}
				topicCount++
				return true
			})

			for i := 0; i < topicCount; i++ {
				<-topicsdone
			}

			logs.Info.Printf("Hub shutdown completed with %d topics", topicCount)

			// let the main goroutine know we are done with the cleanup
			hubdone <- true

			return
		}
	}
}
