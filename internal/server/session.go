package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

// outboundBuffer bounds the per-connection send queue. A subscriber
// that cannot keep up loses frames instead of stalling the hub loop.
const outboundBuffer = 64

// session is one websocket connection. id doubles as the connection
// handle the game core knows players and managers by. roomCode is
// owned by the hub goroutine.
type session struct {
	id       string
	out      chan []byte
	roomCode string
}

func (s *session) deliver(frame []byte, logger *slog.Logger) {
	select {
	case s.out <- frame:
	default:
		logger.Warn("dropping frame for slow subscriber", "conn", s.id)
	}
}

// handleWS upgrades the connection and pumps it: one goroutine writes
// queued frames, the handler goroutine reads inbound events into the
// hub. The connection stays open until the client leaves or the server
// shuts down; a hangup command is always the session's last word.
func handleWS(logger *slog.Logger, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		sess := &session{
			id:  uuid.NewString(),
			out: make(chan []byte, outboundBuffer),
		}
		hub.enqueue(ctx, command{kind: cmdAttach, sess: sess})
		defer hub.enqueue(context.Background(), command{kind: cmdHangup, sess: sess})

		logger.Debug("websocket session opened", "conn", sess.id)

		go func() {
			defer cancel()
			for {
				select {
				case <-ctx.Done():
					return
				case frame := <-sess.out:
					if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
						logger.Debug("websocket write failed", "conn", sess.id, "error", err)
						return
					}
				}
			}
		}()

		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				logger.Debug("websocket session ended", "conn", sess.id, "error", err)
				return
			}

			var env envelope
			if err := json.Unmarshal(data, &env); err != nil || env.Type == "" {
				hub.send(sess, "errorMsg", ErrorPayload{
					Kind:    "BadRequest",
					Message: "frames must look like {\"type\": ..., \"data\": ...}",
				})
				continue
			}
			hub.enqueue(ctx, command{kind: cmdMessage, sess: sess, env: env})
		}
	}
}
