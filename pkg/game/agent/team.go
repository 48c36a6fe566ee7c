package agent

import (
	"errors"
)

// MaxTeamSize is how many soldiers one team holds
const MaxTeamSize = 2

// ErrTeamFull is returned when adding to a team that is already full
var ErrTeamFull = errors.New("team is full")

// Team groups soldiers that never attack each other
type Team struct {
	ID       int
	Soldiers []*Soldier
}

// NewTeam creates an empty team
func NewTeam(id int) *Team {
	return &Team{ID: id}
}

// Add appends s to the team, refusing it once MaxTeamSize is reached
func (t *Team) Add(s *Soldier) error {
	if len(t.Soldiers) >= MaxTeamSize {
		return ErrTeamFull
	}
	t.Soldiers = append(t.Soldiers, s)
	return nil
}

// Len returns the number of soldiers still on the team
func (t *Team) Len() int {
	return len(t.Soldiers)
}

// Empty reports whether nobody is left
func (t *Team) Empty() bool {
	return len(t.Soldiers) == 0
}

// RemoveDead drops soldiers without health and returns them
func (t *Team) RemoveDead() []*Soldier {
	var dead []*Soldier
	alive := t.Soldiers[:0]
	for _, s := range t.Soldiers {
		if s.Alive() {
			alive = append(alive, s)
		} else {
			dead = append(dead, s)
		}
	}
	for i := len(alive); i < len(t.Soldiers); i++ {
		t.Soldiers[i] = nil
	}
	t.Soldiers = alive
	return dead
}
