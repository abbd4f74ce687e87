package server

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/playtrade/exportquiz/internal/game"
)

// Wire protocol: every frame, both directions, is {"type": ..., "data": ...}.
//
// Inbound:  createRoom, joinRoom, setSettings, startGame, selectCountry, endGame
// Outbound: roomCreated, playerList, settingsUpdated, countriesList, gameStarted,
//           countryAccepted, gameEnded, roomClosed, errorMsg

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

var validate = validator.New()

// decode unmarshals an inbound payload into v and applies its validate tags.
func decode(data json.RawMessage, v any) error {
	if len(data) > 0 {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("malformed payload: %w", err)
		}
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

type createRoomRequest struct {
	Product      string `json:"product"`
	Year         string `json:"year"`
	NumCountries int    `json:"numCountries" validate:"omitempty,min=1"`
}

func (r createRoomRequest) hasSettings() bool {
	return r.Product != "" || r.Year != "" || r.NumCountries != 0
}

type joinRoomRequest struct {
	RoomCode   string `json:"roomCode" validate:"required"`
	PlayerName string `json:"playerName" validate:"required,max=64"`
}

type setSettingsRequest struct {
	RoomCode     string `json:"roomCode" validate:"required"`
	Product      string `json:"product" validate:"required"`
	Year         string `json:"year" validate:"required"`
	NumCountries int    `json:"numCountries" validate:"required,min=1"`
}

type roomRequest struct {
	RoomCode string `json:"roomCode" validate:"required"`
}

type selectCountryRequest struct {
	RoomCode string `json:"roomCode" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

type roomCreatedPayload struct {
	RoomCode          string   `json:"roomCode"`
	AvailableProducts []string `json:"availableProducts"`
	AvailableYears    []string `json:"availableYears"`
}

type playerInfo struct {
	Name              string   `json:"name"`
	SelectedCountries []string `json:"selectedCountries"`
	Score             float64  `json:"score"`
	SharePercent      float64  `json:"sharePercent"`
}

type countryAcceptedPayload struct {
	Country string `json:"country"`
}

type roomClosedPayload struct {
	Reason string `json:"reason"`
}

// ErrorPayload tags every rejection with its taxonomy kind so clients
// can react without parsing the message text.
type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// marshalEvent encodes one outbound frame. Payloads are built from
// in-memory state and always marshal; an error here is a programming
// bug, reported by the caller's logger.
func marshalEvent(typ string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s payload: %w", typ, err)
		}
		raw = b
	}
	return json.Marshal(envelope{Type: typ, Data: raw})
}

func roster(room *game.Room) []playerInfo {
	players := room.Players()
	out := make([]playerInfo, len(players))
	for i, p := range players {
		out[i] = playerInfo{
			Name:              p.Name,
			SelectedCountries: append([]string{}, p.Selected...),
			Score:             p.Score,
			SharePercent:      p.SharePercent,
		}
	}
	return out
}
