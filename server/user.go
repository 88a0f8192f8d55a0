/******************************************************************************
 *
 *  Description :
 *
 *    Targeted per-user deliveries: frames addressed to every live session
 *    of one account rather than to a topic.
 *
 *****************************************************************************/

package main

import (
	"github.com/livelog/livelog/server/logs"
	"github.com/livelog/livelog/server/store/types"
)

// pushToUser queues a frame to every live session of the given user. The
// frame is addressed to the pseudo-topic "me"; there is no dispatcher behind
// it, delivery goes straight to the sessions. Runs on the shared pool so a
// stuck session never stalls the mutation that triggered the push.
func pushToUser(uid types.Uid, msg *ServerComMessage) {
	ok := globals.pushPool.Schedule(func() {
		count := 0
		globals.sessionStore.Range(func(_ string, s *Session) bool {
			if s.uid == uid {
				s.queueOut(msg)
				count++
			}
			return true
		})
		if count > 0 {
			logs.Info.Println("push: delivered to", count, "session(s) of", uid.String())
		}
	})
	if !ok {
		statsInc("DroppedDeliveries", 1)
		logs.Warn.Println("push: pool stopped or saturated, dropped update for", uid.String())
	}
}
