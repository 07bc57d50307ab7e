package model

import (
	"fmt"
	"strings"
)

// Player is the subset of the sleeper player directory needed to label
// player scores.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	FullName  string
	Position  Position
	Team      string
}

// Name returns the display name of the player. Team defenses in sleeper only
// have a first and last name ("Seattle", "Seahawks") so fall back to that.
func (p *Player) Name() string {
	if p.FullName != "" {
		return p.FullName
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.FirstName, p.LastName))
}

// PlayerDirectory maps player ids to player details.
type PlayerDirectory map[string]Player

// Lookup returns the name and position of a player, or the id and
// POS_UNKNOWN when the player is not in the directory.
func (d PlayerDirectory) Lookup(id string) (string, Position) {
	p, found := d[id]
	if !found {
		return id, POS_UNKNOWN
	}
	return p.Name(), p.Position
}
