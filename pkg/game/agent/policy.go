package agent

// Policy is a soldier role. It decides what the soldier looks for next
// and when it is too hurt to fight.
type Policy interface {
	Name() string
	Decide(s *Soldier) State
	LowHealth(s *Soldier) bool
}

// Defensive soldiers keep their health and stock topped up before they
// go exploring.
type Defensive struct{}

func (Defensive) Name() string { return "defensive" }

// LowHealth is below half of the maximum
func (Defensive) LowHealth(s *Soldier) bool {
	return 2*s.Health < s.MaxHealth
}

func (d Defensive) Decide(s *Soldier) State {
	switch {
	case d.LowHealth(s):
		return LookingForHealth
	case s.Bullets < 3:
		return LookingForBullets
	case s.Grenades < 2:
		return LookingForGrenades
	default:
		return Discovering
	}
}

// Offensive soldiers only resupply when completely dry or nearly dead.
type Offensive struct{}

func (Offensive) Name() string { return "offensive" }

// LowHealth is below a tenth of the maximum
func (Offensive) LowHealth(s *Soldier) bool {
	return 10*s.Health < s.MaxHealth
}

func (o Offensive) Decide(s *Soldier) State {
	switch {
	case s.NoAmmunition():
		return LookingForGrenades
	case o.LowHealth(s):
		return LookingForHealth
	default:
		return Discovering
	}
}
