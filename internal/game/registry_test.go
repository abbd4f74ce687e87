package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/playtrade/exportquiz/internal/dataset"
)

// wheatIndex is the dataset most tests play against.
func wheatIndex() *dataset.Index {
	return dataset.New([]dataset.Record{
		{Country: "A", Product: "Wheat", Year: "2020", Value: 100},
		{Country: "B", Product: "Wheat", Year: "2020", Value: 50},
		{Country: "C", Product: "Wheat", Year: "2020", Value: 25},
	})
}

func readyRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	reg.SetIndex(wheatIndex())
	return reg
}

func TestCreateRoomBeforeDatasetReady(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.CreateRoom("mgr"); !errors.Is(err, ErrDatasetNotReady) {
		t.Fatalf("CreateRoom before SetIndex: err = %v, want ErrDatasetNotReady", err)
	}

	reg.SetIndex(wheatIndex())
	if _, err := reg.CreateRoom("mgr"); err != nil {
		t.Fatalf("CreateRoom after SetIndex: %v", err)
	}
}

func TestRoomCodes(t *testing.T) {
	reg := readyRegistry(t)

	seen := make(map[string]bool)
	for range 50 {
		room, err := reg.CreateRoom("mgr")
		if err != nil {
			t.Fatalf("CreateRoom: %v", err)
		}

		if len(room.Code) != codeLength {
			t.Errorf("code %q: length = %d, want %d", room.Code, len(room.Code), codeLength)
		}
		for _, c := range room.Code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Errorf("code %q contains %q, not in alphabet", room.Code, c)
			}
		}
		if seen[room.Code] {
			t.Errorf("code %q issued twice", room.Code)
		}
		seen[room.Code] = true
	}

	if reg.Len() != 50 {
		t.Errorf("Len = %d, want 50", reg.Len())
	}
}

func TestRoomLookup(t *testing.T) {
	reg := readyRegistry(t)

	room, err := reg.CreateRoom("mgr")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	// Codes are typed by humans: case and whitespace must not matter.
	got, err := reg.Room("  " + strings.ToLower(room.Code) + " ")
	if err != nil {
		t.Fatalf("Room(lowercased code): %v", err)
	}
	if got != room {
		t.Error("lookup returned a different room")
	}

	if _, err := reg.Room("NOPE99"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Room(unknown): err = %v, want ErrRoomNotFound", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	reg := readyRegistry(t)

	room, err := reg.CreateRoom("mgr")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	reg.Remove(room.Code)
	reg.Remove(room.Code) // no-op, must not panic

	if _, err := reg.Room(room.Code); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Room after Remove: err = %v, want ErrRoomNotFound", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len = %d, want 0", reg.Len())
	}
}
