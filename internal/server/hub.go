package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/playtrade/exportquiz/internal/game"
)

type cmdKind int

const (
	cmdAttach cmdKind = iota // session opened, before any message
	cmdMessage
	cmdHangup // connection closed
)

type command struct {
	kind cmdKind
	sess *session
	env  envelope
}

// Hub is the event dispatcher. A single goroutine drains commands in
// arrival order and runs each handler to completion, which is what
// makes every multi-step room mutation atomic — there are no locks
// anywhere in the game core because nothing else ever touches it.
//
// All commands from one connection go through the same channel, so a
// hangup is always processed after the messages that preceded it.
type Hub struct {
	logger   *slog.Logger
	reg      *game.Registry
	commands chan command
	done     chan struct{}

	sessions map[string]*session            // connID → session
	members  map[string]map[string]*session // roomCode → connID → session
}

func NewHub(logger *slog.Logger, reg *game.Registry) *Hub {
	return &Hub{
		logger:   logger,
		reg:      reg,
		commands: make(chan command, 256),
		done:     make(chan struct{}),
		sessions: make(map[string]*session),
		members:  make(map[string]map[string]*session),
	}
}

// Run processes commands until ctx is cancelled. It must be running
// before the websocket route is served.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-h.commands:
			h.handle(cmd)
		}
	}
}

// enqueue hands a command to the hub loop, giving up if either the hub
// or the submitting connection is shutting down.
func (h *Hub) enqueue(ctx context.Context, cmd command) {
	select {
	case h.commands <- cmd:
	case <-h.done:
	case <-ctx.Done():
	}
}

func (h *Hub) handle(cmd command) {
	switch cmd.kind {
	case cmdAttach:
		h.sessions[cmd.sess.id] = cmd.sess
	case cmdHangup:
		h.hangup(cmd.sess)
	case cmdMessage:
		h.dispatch(cmd.sess, cmd.env)
	}
}

func (h *Hub) dispatch(sess *session, env envelope) {
	var err error
	switch env.Type {
	case "createRoom":
		err = h.createRoom(sess, env.Data)
	case "joinRoom":
		err = h.joinRoom(sess, env.Data)
	case "setSettings":
		err = h.setSettings(sess, env.Data)
	case "startGame":
		err = h.startGame(sess, env.Data)
	case "selectCountry":
		err = h.selectCountry(sess, env.Data)
	case "endGame":
		err = h.endGame(sess, env.Data)
	default:
		h.logger.Debug("unknown event", "type", env.Type, "conn", sess.id)
		h.sendError(sess, errors.New("unknown event type: "+env.Type))
		return
	}

	// Rejections never mutate state and go to the offender only.
	if err != nil {
		h.sendError(sess, err)
	}
}

func (h *Hub) createRoom(sess *session, data []byte) error {
	var req createRoomRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	if sess.roomCode != "" {
		return errors.New("already attached to a room")
	}

	idx, err := h.reg.Index()
	if err != nil {
		return err
	}

	room, err := h.reg.CreateRoom(sess.id)
	if err != nil {
		return err
	}
	sess.roomCode = room.Code
	h.members[room.Code] = map[string]*session{sess.id: sess}

	h.send(sess, "roomCreated", roomCreatedPayload{
		RoomCode:          room.Code,
		AvailableProducts: idx.Products(),
		AvailableYears:    idx.Years(),
	})

	// Initial settings ride along on createRoom; a bad payload still
	// leaves the manager with a usable room.
	if req.hasSettings() {
		if req.Product == "" || req.Year == "" || req.NumCountries < 1 {
			return errors.New("initial settings need product, year and numCountries together")
		}
		return h.applySettings(sess, room, game.Settings{
			Product:      req.Product,
			Year:         req.Year,
			NumCountries: req.NumCountries,
		})
	}
	return nil
}

func (h *Hub) joinRoom(sess *session, data []byte) error {
	var req joinRoomRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	if sess.roomCode != "" {
		return errors.New("already attached to a room")
	}

	room, err := h.reg.Room(req.RoomCode)
	if err != nil {
		return err
	}
	if _, err := room.Join(sess.id, req.PlayerName); err != nil {
		return err
	}
	sess.roomCode = room.Code
	h.members[room.Code][sess.id] = sess

	h.broadcast(room.Code, "playerList", roster(room))
	return nil
}

func (h *Hub) setSettings(sess *session, data []byte) error {
	var req setSettingsRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	room, err := h.reg.Room(req.RoomCode)
	if err != nil {
		return err
	}
	return h.applySettings(sess, room, game.Settings{
		Product:      req.Product,
		Year:         req.Year,
		NumCountries: req.NumCountries,
	})
}

// applySettings runs the transition and, on success, tells every member
// what changed and which countries are now valid picks.
func (h *Hub) applySettings(sess *session, room *game.Room, s game.Settings) error {
	idx, err := h.reg.Index()
	if err != nil {
		return err
	}
	if err := room.ApplySettings(sess.id, s); err != nil {
		return err
	}

	countries := idx.Countries(s.Product, s.Year)
	if countries == nil {
		countries = []string{}
	}
	h.broadcast(room.Code, "settingsUpdated", room.Settings)
	h.broadcast(room.Code, "countriesList", countries)
	h.broadcast(room.Code, "playerList", roster(room)) // selections were reset
	return nil
}

func (h *Hub) startGame(sess *session, data []byte) error {
	var req roomRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	room, err := h.reg.Room(req.RoomCode)
	if err != nil {
		return err
	}
	if err := room.Start(sess.id); err != nil {
		return err
	}

	h.broadcast(room.Code, "gameStarted", room.Settings)
	return nil
}

func (h *Hub) selectCountry(sess *session, data []byte) error {
	var req selectCountryRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	room, err := h.reg.Room(req.RoomCode)
	if err != nil {
		return err
	}
	idx, err := h.reg.Index()
	if err != nil {
		return err
	}
	if err := room.SelectCountry(sess.id, req.Country, idx); err != nil {
		return err
	}

	h.send(sess, "countryAccepted", countryAcceptedPayload{Country: req.Country})
	h.broadcast(room.Code, "playerList", roster(room))
	return nil
}

func (h *Hub) endGame(sess *session, data []byte) error {
	var req roomRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	room, err := h.reg.Room(req.RoomCode)
	if err != nil {
		return err
	}
	idx, err := h.reg.Index()
	if err != nil {
		return err
	}
	results, err := room.End(sess.id, idx)
	if err != nil {
		return err
	}

	h.broadcast(room.Code, "gameEnded", results)
	return nil
}

// hangup tears down a closed connection. A vanished manager takes the
// whole room with it; a vanished player just leaves the roster (their
// reserved countries stay reserved, see game.Room.RemovePlayer).
func (h *Hub) hangup(sess *session) {
	delete(h.sessions, sess.id)

	code := sess.roomCode
	if code == "" {
		return
	}
	room, err := h.reg.Room(code)
	if err != nil {
		return
	}
	delete(h.members[code], sess.id)

	if room.IsManager(sess.id) {
		h.broadcast(code, "roomClosed", roomClosedPayload{Reason: "manager disconnected"})
		for _, member := range h.members[code] {
			member.roomCode = ""
		}
		delete(h.members, code)
		h.reg.Remove(code)
		h.logger.Info("room closed", "room", code, "reason", "manager disconnected")
		return
	}

	if room.RemovePlayer(sess.id) {
		h.broadcast(code, "playerList", roster(room))
	}
}

func (h *Hub) send(sess *session, typ string, data any) {
	b, err := marshalEvent(typ, data)
	if err != nil {
		h.logger.Error("encoding event", "type", typ, "error", err)
		return
	}
	sess.deliver(b, h.logger)
}

func (h *Hub) sendError(sess *session, err error) {
	h.logger.Debug("rejected event", "conn", sess.id, "kind", game.Kind(err), "error", err)
	h.send(sess, "errorMsg", ErrorPayload{Kind: game.Kind(err), Message: err.Error()})
}

// broadcast fans one event out to every member of a room, in the order
// the hub processed the triggering command.
func (h *Hub) broadcast(code, typ string, data any) {
	b, err := marshalEvent(typ, data)
	if err != nil {
		h.logger.Error("encoding event", "type", typ, "error", err)
		return
	}
	for _, member := range h.members[code] {
		member.deliver(b, h.logger)
	}
}
