package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	c := Default()
	c.Height = 0
	c.Soldiers = -2
	c.HealthRestore = 0

	err := c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	for _, name := range []string{"height", "soldiers", "health.restore"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestValidate_GridTooSmall(t *testing.T) {
	c := Default()
	c.Height = 12
	assert.ErrorIs(t, c.Validate(), ErrInvalid)
}

func TestValidate_TooManyRooms(t *testing.T) {
	c := Default()
	c.Rooms = 20
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot fit")
}

func TestValidate_UnusedAmmunitionSettings(t *testing.T) {
	c := Default()
	c.Bullets = Ammunition{}
	c.Grenades = Ammunition{}
	c.PackageCapacity = 0
	assert.NoError(t, c.Validate())
}

func TestLoad_NestedLayout(t *testing.T) {
	doc := `{
		"height": 60,
		"width": 50,
		"rooms": 6,
		"soldiers": 6,
		"soldier": {"max_health": 80},
		"packages": {
			"ammunition": {"bullets": 3, "grenades": 2, "capacity": 7},
			"health": 5
		},
		"ammunition": {
			"bullet": {"max_damage": 12},
			"grenade": {"max_damage": 40}
		},
		"health": {"restore": 25},
		"boxes": 9,
		"iterations_limit": 200
	}`

	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 60, c.Height)
	assert.Equal(t, 50, c.Width)
	assert.Equal(t, 6, c.Rooms)
	assert.Equal(t, 6, c.Soldiers)
	assert.Equal(t, 80, c.MaxHealth)
	assert.Equal(t, Ammunition{Packages: 3, MaxDamage: 12}, c.Bullets)
	assert.Equal(t, Ammunition{Packages: 2, MaxDamage: 40}, c.Grenades)
	assert.Equal(t, 7, c.PackageCapacity)
	assert.Equal(t, 5, c.HealthPackages)
	assert.Equal(t, 25, c.HealthRestore)
	assert.Equal(t, 9, c.Boxes)
	assert.Equal(t, 200, c.Iterations)
	assert.Equal(t, Default().Seed, c.Seed)
	assert.NoError(t, c.Validate())
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	c, err := Load(strings.NewReader(`{"rooms": 3, "seed": 99}`))
	require.NoError(t, err)

	want := Default()
	want.Rooms = 3
	want.Seed = 99
	assert.Equal(t, want, c)
}

func TestLoad_Rejects(t *testing.T) {
	_, err := Load(strings.NewReader(`{"rooms": "four"}`))
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`{"towers": 2}`))
	assert.Error(t, err)
}
