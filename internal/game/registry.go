package game

import (
	"crypto/rand"
	"strings"
	"sync/atomic"

	"github.com/playtrade/exportquiz/internal/dataset"
)

// Room codes avoid 0/O/1/I so they survive being read out loud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const codeLength = 6

// Registry is the process-wide map from room code to live room. It
// starts empty, is never persisted, and — apart from SetIndex, which
// the loader calls once — must only be touched from the hub goroutine.
type Registry struct {
	rooms map[string]*Room
	index atomic.Pointer[dataset.Index]
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// SetIndex installs the loaded dataset. Until it is called every
// CreateRoom fails with ErrDatasetNotReady; it is safe to call from a
// goroutine other than the hub's.
func (g *Registry) SetIndex(idx *dataset.Index) {
	g.index.Store(idx)
}

// Index returns the dataset, or ErrDatasetNotReady while loading.
func (g *Registry) Index() (*dataset.Index, error) {
	idx := g.index.Load()
	if idx == nil {
		return nil, ErrDatasetNotReady
	}
	return idx, nil
}

// CreateRoom opens a new waiting room owned by managerID and returns
// it. Codes are regenerated until unused among live rooms.
func (g *Registry) CreateRoom(managerID string) (*Room, error) {
	if _, err := g.Index(); err != nil {
		return nil, err
	}

	code := newCode()
	for _, taken := g.rooms[code]; taken; _, taken = g.rooms[code] {
		code = newCode()
	}

	room := newRoom(code, managerID)
	g.rooms[code] = room
	return room, nil
}

// Room resolves a code, case-insensitively.
func (g *Registry) Room(code string) (*Room, error) {
	room, ok := g.rooms[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Remove deletes a room and with it every player it owns. Removing an
// unknown code is a no-op.
func (g *Registry) Remove(code string) {
	delete(g.rooms, strings.ToUpper(strings.TrimSpace(code)))
}

// Len is the number of live rooms.
func (g *Registry) Len() int { return len(g.rooms) }

func newCode() string {
	buf := make([]byte, codeLength)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}
