package game

import (
	"fmt"

	"github.com/playtrade/exportquiz/internal/dataset"
)

// ApplySettings sets or replaces the round configuration. Manager-only,
// waiting-only. Replacing settings resets every player's picks and the
// room-wide reservations, since the valid country pool may have changed.
func (r *Room) ApplySettings(callerID string, s Settings) error {
	if !r.IsManager(callerID) {
		return ErrUnauthorized
	}
	if r.Status != StatusWaiting {
		return fmt.Errorf("%w: settings are frozen once the game starts", ErrInvalidState)
	}

	r.Settings = &s
	r.used = make(map[string]struct{})
	for _, p := range r.players {
		p.Selected = nil
	}
	return nil
}

// Join adds a player while the room is still waiting.
func (r *Room) Join(connID, name string) (*Player, error) {
	if r.Status != StatusWaiting {
		return nil, ErrGameAlreadyStarted
	}
	if _, ok := r.players[connID]; ok {
		return nil, fmt.Errorf("%w: connection already joined", ErrInvalidState)
	}

	p := &Player{ConnID: connID, Name: name}
	r.players[connID] = p
	r.order = append(r.order, connID)
	return p, nil
}

// Start moves the room to playing. Manager-only; settings must be set.
func (r *Room) Start(callerID string) error {
	if !r.IsManager(callerID) {
		return ErrUnauthorized
	}
	if r.Status != StatusWaiting {
		return fmt.Errorf("%w: room is %s", ErrInvalidState, r.Status)
	}
	if r.Settings == nil {
		return ErrSettingsNotSet
	}

	r.Status = StatusPlaying
	return nil
}

// SelectCountry validates and applies one pick. Checks run in a fixed
// order so rejections are deterministic; on success the player's list
// and the room reservation set are updated together, in this one call,
// so no other command can observe one without the other.
func (r *Room) SelectCountry(connID, country string, idx *dataset.Index) error {
	if r.Status != StatusPlaying {
		return fmt.Errorf("%w: picks are only allowed while playing", ErrInvalidState)
	}
	p, ok := r.players[connID]
	if !ok {
		return ErrNotAPlayer
	}
	if r.Settings == nil {
		return ErrSettingsNotSet
	}
	if !idx.HasCountry(r.Settings.Product, r.Settings.Year, country) {
		return fmt.Errorf("%w: %q for %s/%s", ErrCountryUnavailable, country, r.Settings.Product, r.Settings.Year)
	}
	if _, taken := r.used[country]; taken {
		for _, own := range p.Selected {
			if own == country {
				return fmt.Errorf("%w: you already picked %q", ErrCountryAlreadyReserved, country)
			}
		}
		return fmt.Errorf("%w: %q was taken by another player", ErrCountryAlreadyReserved, country)
	}
	if len(p.Selected) >= r.Settings.NumCountries {
		return fmt.Errorf("%w: limit is %d", ErrCountryLimitReached, r.Settings.NumCountries)
	}

	p.Selected = append(p.Selected, country)
	r.used[country] = struct{}{}
	return nil
}

// End moves the room to ended and computes the final results snapshot.
// Manager-only, playing-only — an already-ended room rejects a second
// end, so scoring runs exactly once per room.
func (r *Room) End(callerID string, idx *dataset.Index) (*Results, error) {
	if !r.IsManager(callerID) {
		return nil, ErrUnauthorized
	}
	if r.Status != StatusPlaying {
		return nil, fmt.Errorf("%w: room is %s", ErrInvalidState, r.Status)
	}

	r.Status = StatusEnded
	return score(r, idx), nil
}

// RemovePlayer drops a player from the roster, reporting whether they
// were present. Their reserved countries stay reserved for the rest of
// the round: releasing them mid-game would let a rejoining player
// reclaim an edge and would shift the balance for everyone else.
func (r *Room) RemovePlayer(connID string) bool {
	if _, ok := r.players[connID]; !ok {
		return false
	}
	delete(r.players, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}
