package entities

import "fmt"

// SupplyKind is what a supply package holds
type SupplyKind int

const (
	Bullets SupplyKind = iota
	Grenades
	Health
)

// Map symbols for supplies and boxes
const (
	SymbolBullets  = "B"
	SymbolGrenades = "G"
	SymbolHealth   = "H"
	SymbolBox      = "X"
)

func (k SupplyKind) String() string {
	switch k {
	case Bullets:
		return "bullets"
	case Grenades:
		return "grenades"
	case Health:
		return "health"
	default:
		return "unknown"
	}
}

// Supply is a package lying on a floor cell. Ammunition packages carry
// Units rounds of Damage each; health packages restore Restore points.
type Supply struct {
	Kind    SupplyKind
	Units   int
	Damage  int
	Restore int
}

// NewBulletPackage creates a package of units bullets dealing damage each
func NewBulletPackage(units, damage int) *Supply {
	return &Supply{Kind: Bullets, Units: units, Damage: damage}
}

// NewGrenadePackage creates a package of units grenades dealing damage each
func NewGrenadePackage(units, damage int) *Supply {
	return &Supply{Kind: Grenades, Units: units, Damage: damage}
}

// NewHealthPackage creates a package restoring restore health
func NewHealthPackage(restore int) *Supply {
	return &Supply{Kind: Health, Restore: restore}
}

// Symbol implements world.Occupant
func (s *Supply) Symbol() string {
	switch s.Kind {
	case Bullets:
		return SymbolBullets
	case Grenades:
		return SymbolGrenades
	default:
		return SymbolHealth
	}
}

// Amount is the quantity handed over on pickup
func (s *Supply) Amount() int {
	if s.Kind == Health {
		return s.Restore
	}
	return s.Units
}

func (s *Supply) String() string {
	return fmt.Sprintf("%s(%d)", s.Kind, s.Amount())
}

// Box is an obstacle. It blocks movement and line of fire.
type Box struct{}

// NewBox creates a box
func NewBox() *Box {
	return &Box{}
}

// Symbol implements world.Occupant
func (*Box) Symbol() string {
	return SymbolBox
}
