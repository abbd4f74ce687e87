package game

import "errors"

// Every rejection the core can produce. All are local and recoverable:
// a rejected command is a pure no-op, reported to the requester only.
var (
	ErrRoomNotFound           = errors.New("room not found")
	ErrDatasetNotReady        = errors.New("dataset is still loading")
	ErrUnauthorized           = errors.New("only the room manager can do that")
	ErrInvalidState           = errors.New("action not allowed in the room's current state")
	ErrGameAlreadyStarted     = errors.New("game already started")
	ErrSettingsNotSet         = errors.New("room settings have not been set")
	ErrCountryUnavailable     = errors.New("country has no data for the current product and year")
	ErrCountryAlreadyReserved = errors.New("country is already reserved")
	ErrCountryLimitReached    = errors.New("country limit reached")
	ErrNotAPlayer             = errors.New("connection has not joined this room")
)

// Kind maps a core error to its stable wire tag so clients can act on
// the category without matching message text.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "RoomNotFound"
	case errors.Is(err, ErrDatasetNotReady):
		return "DatasetNotReady"
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrGameAlreadyStarted):
		return "GameAlreadyStarted"
	case errors.Is(err, ErrSettingsNotSet):
		return "SettingsNotSet"
	case errors.Is(err, ErrCountryUnavailable):
		return "CountryUnavailable"
	case errors.Is(err, ErrCountryAlreadyReserved):
		return "CountryAlreadyReserved"
	case errors.Is(err, ErrCountryLimitReached):
		return "CountryLimitReached"
	case errors.Is(err, ErrNotAPlayer):
		return "NotAPlayer"
	case errors.Is(err, ErrInvalidState):
		return "InvalidState"
	default:
		return "BadRequest"
	}
}
