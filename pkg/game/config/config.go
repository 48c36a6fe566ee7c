// Package config holds the simulation settings and the JSON layout they
// are read from.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// MinDimension is the smallest grid side that can hold a single room plus
// the wall and clearance around it.
const MinDimension = 16

// roomFootprint approximates the interior area one room needs: the
// smallest room side plus the padding kept between rooms, squared.
const roomFootprint = (7 + 4) * (7 + 4)

// Ammunition describes one kind of ammunition: how many packages are
// spread over the map and the damage of a single unit.
type Ammunition struct {
	Packages  int
	MaxDamage int
}

// Config is the flat set of values the simulation is built from
type Config struct {
	Height int
	Width  int
	Rooms  int

	Soldiers  int
	MaxHealth int

	Bullets         Ammunition
	Grenades        Ammunition
	PackageCapacity int

	HealthPackages int
	HealthRestore  int

	Boxes int

	Iterations int
	Seed       int64
}

// Default returns a small, valid configuration
func Default() Config {
	return Config{
		Height:          40,
		Width:           40,
		Rooms:           4,
		Soldiers:        4,
		MaxHealth:       100,
		Bullets:         Ammunition{Packages: 4, MaxDamage: 10},
		Grenades:        Ammunition{Packages: 4, MaxDamage: 30},
		PackageCapacity: 5,
		HealthPackages:  4,
		HealthRestore:   30,
		Boxes:           6,
		Iterations:      500,
		Seed:            1,
	}
}

// Validate reports every problem with the configuration at once
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, name, v))
		}
	}
	notNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalid, name, v))
		}
	}

	positive("height", c.Height)
	positive("width", c.Width)
	positive("rooms", c.Rooms)
	positive("soldiers", c.Soldiers)
	positive("soldier.max_health", c.MaxHealth)
	positive("iterations_limit", c.Iterations)
	notNegative("packages.ammunition.bullets", c.Bullets.Packages)
	notNegative("packages.ammunition.grenades", c.Grenades.Packages)
	notNegative("packages.health", c.HealthPackages)
	notNegative("boxes", c.Boxes)
	if c.Bullets.Packages > 0 || c.Grenades.Packages > 0 {
		positive("packages.ammunition.capacity", c.PackageCapacity)
	}
	if c.Bullets.Packages > 0 {
		positive("ammunition.bullet.max_damage", c.Bullets.MaxDamage)
	}
	if c.Grenades.Packages > 0 {
		positive("ammunition.grenade.max_damage", c.Grenades.MaxDamage)
	}
	if c.HealthPackages > 0 {
		positive("health.restore", c.HealthRestore)
	}

	if c.Height > 0 && c.Width > 0 {
		if c.Height < MinDimension || c.Width < MinDimension {
			errs = append(errs, fmt.Errorf("%w: grid %dx%d is smaller than %dx%d",
				ErrInvalid, c.Height, c.Width, MinDimension, MinDimension))
		} else if c.Rooms > 0 && c.Rooms*roomFootprint > (c.Height-4)*(c.Width-4) {
			errs = append(errs, fmt.Errorf("%w: %d rooms cannot fit a %dx%d grid",
				ErrInvalid, c.Rooms, c.Height, c.Width))
		}
	}

	return errors.Join(errs...)
}

// file mirrors the nested JSON document
type file struct {
	Height     *int   `json:"height"`
	Width      *int   `json:"width"`
	Rooms      *int   `json:"rooms"`
	Soldiers   *int   `json:"soldiers"`
	Boxes      *int   `json:"boxes"`
	Iterations *int   `json:"iterations_limit"`
	Seed       *int64 `json:"seed"`

	Soldier struct {
		MaxHealth *int `json:"max_health"`
	} `json:"soldier"`

	Packages struct {
		Ammunition struct {
			Bullets  *int `json:"bullets"`
			Grenades *int `json:"grenades"`
			Capacity *int `json:"capacity"`
		} `json:"ammunition"`
		Health *int `json:"health"`
	} `json:"packages"`

	Ammunition struct {
		Bullet struct {
			MaxDamage *int `json:"max_damage"`
		} `json:"bullet"`
		Grenade struct {
			MaxDamage *int `json:"max_damage"`
		} `json:"grenade"`
	} `json:"ammunition"`

	Health struct {
		Restore *int `json:"restore"`
	} `json:"health"`
}

// Load reads a JSON document over the defaults. Keys missing from the
// document keep their default value. The result is not validated.
func Load(r io.Reader) (Config, error) {
	var f file
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	c := Default()
	setInt(&c.Height, f.Height)
	setInt(&c.Width, f.Width)
	setInt(&c.Rooms, f.Rooms)
	setInt(&c.Soldiers, f.Soldiers)
	setInt(&c.Boxes, f.Boxes)
	setInt(&c.Iterations, f.Iterations)
	setInt(&c.MaxHealth, f.Soldier.MaxHealth)
	setInt(&c.Bullets.Packages, f.Packages.Ammunition.Bullets)
	setInt(&c.Grenades.Packages, f.Packages.Ammunition.Grenades)
	setInt(&c.PackageCapacity, f.Packages.Ammunition.Capacity)
	setInt(&c.HealthPackages, f.Packages.Health)
	setInt(&c.Bullets.MaxDamage, f.Ammunition.Bullet.MaxDamage)
	setInt(&c.Grenades.MaxDamage, f.Ammunition.Grenade.MaxDamage)
	setInt(&c.HealthRestore, f.Health.Restore)
	if f.Seed != nil {
		c.Seed = *f.Seed
	}
	return c, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
