/******************************************************************************
 *
 *  Description :
 *
 *    Handler of websocket connections: reading client requests, pushing
 *    frames back, connection supervision.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/livelog/livelog/server/logs"
	"github.com/livelog/livelog/server/store"
	"github.com/livelog/livelog/server/store/types"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = idleSessionTimeout

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

func (s *Session) closeWS() {
	if s.ws != nil {
		s.ws.Close()
	}
}

func (s *Session) readLoop() {
	defer func() {
		s.closeWS()
		s.cleanUp()
	}()

	s.ws.SetReadLimit(globals.maxMessageSize)
	s.ws.SetReadDeadline(time.Now().Add(pongWait))
	s.ws.SetPongHandler(func(string) error {
		s.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Read a ClientComMessage.
		_, raw, err := s.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				logs.Err.Println("ws: readLoop", s.sid, err)
			}
			return
		}
		statsInc("IncomingMessagesWebsockTotal", 1)
		s.dispatchRaw(raw)
	}
}

func (s *Session) sendMessage(msg interface{}) bool {
	if len(s.send) > sendQueueLimit {
		logs.Err.Println("ws: outbound queue limit exceeded", s.sid)
		return false
	}

	statsInc("OutgoingMessagesWebsockTotal", 1)
	if err := wsWrite(s.ws, websocket.TextMessage, msg); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			websocket.CloseNormalClosure) {
			logs.Err.Println("ws: writeLoop", s.sid, err)
		}
		return false
	}
	return true
}

func (s *Session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		// Break readLoop.
		s.closeWS()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			if !ok {
				// Channel closed.
				return
			}
			switch v := msg.(type) {
			case *ServerComMessage:
				if !s.sendMessage(s.serializeAndUpdateStats(v)) {
					return
				}
			default:
				// Serialized frame.
				if !s.sendMessage(v) {
					return
				}
			}

		case msg := <-s.stop:
			// Shutdown requested, don't care if the message is delivered.
			if msg != nil {
				wsWrite(s.ws, websocket.TextMessage, msg)
			}
			return

		case topic := <-s.detach:
			s.delSub(topic)

		case <-ticker.C:
			if err := wsWrite(s.ws, websocket.PingMessage, nil); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
					websocket.CloseNormalClosure) {
					logs.Err.Println("ws: writeLoop ping", s.sid, err)
				}
				return
			}
		}
	}
}

// Writes a message with the given message type (mt) and payload.
func wsWrite(ws *websocket.Conn, mt int, msg interface{}) error {
	var bits []byte
	if msg != nil {
		bits = msg.([]byte)
	} else {
		bits = []byte{}
	}
	ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteMessage(mt, bits)
}

// Handles websocket requests from peers.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow connections from any Origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// authenticateRequest resolves the bearer token carried by the upgrade
// request. Browsers cannot set headers on websocket connects, so the token
// is also accepted as a query parameter.
func authenticateRequest(req *http.Request) (*types.User, error) {
	var token string
	if h := req.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	}
	if token == "" {
		token = req.URL.Query().Get("token")
	}

	usr, err := store.Users.GetByToken([]byte(token))
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, types.ErrNotFound
	}
	return usr, nil
}

func serveWebSocket(wrt http.ResponseWriter, req *http.Request) {
	now := types.TimeNow()

	if req.Method != http.MethodGet {
		wrt.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(wrt).Encode(
			&ServerComMessage{Ctrl: &MsgServerCtrl{Code: http.StatusMethodNotAllowed,
				Text: "method not allowed", Timestamp: now}})
		logs.Err.Println("ws: invalid HTTP method", req.Method)
		return
	}

	usr, err := authenticateRequest(req)
	if err != nil {
		// The connection is rejected before the websocket upgrade.
		wrt.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(wrt).Encode(
			&ServerComMessage{Ctrl: &MsgServerCtrl{Code: http.StatusUnauthorized,
				Text: "authentication required", Timestamp: now}})
		logs.Err.Println("ws: missing or invalid auth token:", err)
		return
	}

	ws, err := upgrader.Upgrade(wrt, req, nil)
	if _, ok := err.(websocket.HandshakeError); ok {
		logs.Err.Println("ws: not a websocket handshake")
		return
	} else if err != nil {
		logs.Err.Println("ws: failed to upgrade ", err)
		return
	}

	sess, count := globals.sessionStore.NewSession(ws, usr)
	if globals.useXForwardedFor {
		sess.remoteAddr = req.Header.Get("X-Forwarded-For")
	}
	if sess.remoteAddr == "" {
		sess.remoteAddr = req.RemoteAddr
	}

	logs.Info.Println("ws: session started", sess.sid, sess.uid, sess.remoteAddr, count)

	// Do work in goroutines to return from serveWebSocket() to release file pointers.
	// Otherwise "too many open files" will happen.
	go sess.writeLoop()
	go sess.readLoop()
}
