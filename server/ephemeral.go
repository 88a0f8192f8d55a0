/******************************************************************************
 *
 *  Description :
 *
 *    Ephemeral typing notifications: non-persisted, best-effort signals
 *    shared with the other subscribers of the topic.
 *
 *****************************************************************************/

package main

import (
	"github.com/livelog/livelog/server/logs"
)

// Entry fields a typing indicator may point at. "clear" withdraws the
// indicator.
var typingFields = map[string]bool{
	"parent":      true,
	"start":       true,
	"end":         true,
	"type":        true,
	"description": true,
	"media":       true,
	"submitter":   true,
	"notes":       true,
	"clear":       true,
}

// note forwards a typing indicator to the other subscribers of the topic.
// Never persisted, never acknowledged: a malformed or misaddressed note is
// dropped on the floor. The only gate is a live subscription, which means
// the recipients are already authorized viewers of the same data.
func (s *Session) note(msg *ClientComMessage) {
	if _, attached := s.subLevel(msg.Topic); !attached {
		return
	}
	if msg.Note.What != "typing" || !typingFields[msg.Note.Field] {
		logs.Info.Println("note: ignored", msg.Note.What, msg.Note.Field, s.sid)
		return
	}

	statsInc("EphemeralTotal", 1)

	globals.hub.route <- &ServerComMessage{
		Data: &MsgServerData{
			Topic:     msg.Topic,
			From:      msg.AsUser,
			Timestamp: msg.Timestamp,
			What:      "typing",
			Typing: &MsgTyping{
				Field: msg.Note.Field,
				Entry: msg.Note.Entry,
				Text:  typingPreview(msg.Note.Text),
				User:  userToWire(s.usr),
			},
		},
		RcptTo:    msg.Topic,
		AsUser:    msg.AsUser,
		Timestamp: msg.Timestamp,
		// The author sees their own keystrokes already.
		SkipSid: s.sid,
	}
}
