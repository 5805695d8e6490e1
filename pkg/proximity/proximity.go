// Package proximity decides when the player is close enough to an NPC to
// interact with it.
package proximity

import (
	"errors"
	"fmt"
	"math"

	"github.com/jwebster45206/wizard-village/pkg/scene"
)

// ErrInvalidConfig is returned when the zone or exit distance cannot produce
// a hysteresis band.
var ErrInvalidConfig = errors.New("invalid proximity config")

// DefaultPlayerSize is the edge of the player's square collision box.
const DefaultPlayerSize = 32

// Config holds the interaction geometry. The zone is centred on the NPC.
type Config struct {
	ZoneW        float64
	ZoneH        float64
	ExitDistance float64 // centre-to-centre distance at which near drops
	PlayerW      float64
	PlayerH      float64
}

// DefaultConfig is a 100×100 zone with an exit distance of 100 for a
// 32×32 player.
func DefaultConfig() Config {
	return Config{
		ZoneW:        100,
		ZoneH:        100,
		ExitDistance: 100,
		PlayerW:      DefaultPlayerSize,
		PlayerH:      DefaultPlayerSize,
	}
}

// Reach is the largest centre distance at which a player box can still
// overlap the zone, reached at the zone's corners.
func (c Config) Reach() float64 {
	return math.Hypot((c.ZoneW+c.PlayerW)/2, (c.ZoneH+c.PlayerH)/2)
}

// Validate checks that the zone has area and that every position which enters
// the zone lies within the exit distance, so near cannot toggle every tick.
func (c Config) Validate() error {
	if c.ZoneW <= 0 || c.ZoneH <= 0 {
		return fmt.Errorf("%w: zone %vx%v must have positive size", ErrInvalidConfig, c.ZoneW, c.ZoneH)
	}
	if c.PlayerW < 0 || c.PlayerH < 0 {
		return fmt.Errorf("%w: player %vx%v must not be negative", ErrInvalidConfig, c.PlayerW, c.PlayerH)
	}
	if reach := c.Reach(); c.ExitDistance <= reach {
		return fmt.Errorf("%w: exit distance %v must exceed the zone's reach %.1f", ErrInvalidConfig, c.ExitDistance, reach)
	}
	return nil
}

// Transition reports what changed during one Update.
type Transition struct {
	Entered bool
	Exited  bool
}

// Detector tracks one player/NPC pair.
type Detector struct {
	cfg  Config
	near bool
}

// New returns a detector that starts out of range.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg}, nil
}

// Update evaluates the player's bounds against the NPC position. It becomes
// near only when the player overlaps the zone, and stops being near only once
// the centres are further apart than the exit distance.
func (d *Detector) Update(player scene.Rect, npc scene.Point) Transition {
	if !d.near {
		if player.Overlaps(d.Zone(npc)) {
			d.near = true
			return Transition{Entered: true}
		}
		return Transition{}
	}
	if scene.Distance(player.Center(), npc) > d.cfg.ExitDistance {
		d.near = false
		return Transition{Exited: true}
	}
	return Transition{}
}

// Zone is the interaction region around npc.
func (d *Detector) Zone(npc scene.Point) scene.Rect {
	return scene.RectAround(npc, d.cfg.ZoneW, d.cfg.ZoneH)
}

// Near reports the current state.
func (d *Detector) Near() bool {
	return d.near
}

// Config returns the detector's geometry.
func (d *Detector) Config() Config {
	return d.cfg
}
