package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for out-of-range tuning values.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of the conveyor.
type Config struct {
	FPS     int     `yaml:"fps"`
	Physics Physics `yaml:"physics"`
	Overlay Overlay `yaml:"overlay"`
	Layout  Layout  `yaml:"layout"`
	Gate    Gate    `yaml:"gate"`
	About   string  `yaml:"about"`
}

// Physics tunes the per-column integration and the input coupling.
type Physics struct {
	WheelClamp     float64       `yaml:"wheel_clamp"`
	ActiveMult     float64       `yaml:"active_mult"`
	OtherMult      float64       `yaml:"other_mult"`
	Friction       float64       `yaml:"friction"`
	VelocitySmooth float64       `yaml:"velocity_smooth"`
	SkewScale      float64       `yaml:"skew_scale"`
	SkewMax        float64       `yaml:"skew_max"`
	SkewSmooth     float64       `yaml:"skew_smooth"`
	BlurHover      float64       `yaml:"blur_hover"`
	BlurOverlay    float64       `yaml:"blur_overlay"`
	BlurSmooth     float64       `yaml:"blur_smooth"`
	IdleAfter      time.Duration `yaml:"idle_after"`
	IdlePush       float64       `yaml:"idle_push"`
	RecycleGuard   int           `yaml:"recycle_guard"`
	SpeedMin       float64       `yaml:"speed_min"`
	SpeedSpread    float64       `yaml:"speed_spread"`
}

// Overlay tunes the info rail.
type Overlay struct {
	CloseDelay      time.Duration `yaml:"close_delay"`
	RailWidth       int           `yaml:"rail_width"`
	SpringFrequency float64       `yaml:"spring_frequency"`
	SpringDamping   float64       `yaml:"spring_damping"`
}

// Layout maps engine units onto the terminal grid.
type Layout struct {
	Columns      int     `yaml:"columns"`
	UnitsPerRow  float64 `yaml:"units_per_row"`
	GapRows      int     `yaml:"gap_rows"`
	MinWidth     int     `yaml:"min_width"`
	WheelStep    float64 `yaml:"wheel_step"`
	KeyStep      float64 `yaml:"key_step"`
	ShearFactor  float64 `yaml:"shear_factor"`
	MinPerColumn int     `yaml:"min_per_column"`
}

// Gate configures the optional password screen.
type Gate struct {
	Password string `yaml:"password"`
}

const defaultAbout = "conveyor\n\nAn endless wall of media cards.\n\n" +
	"Scroll a column and its neighbours push back. Leave it alone and it drifts.\n" +
	"Click a card to open the info rail beside its column."

// Default returns the stock tuning.
func Default() Config {
	return Config{
		FPS: 60,
		Physics: Physics{
			WheelClamp:     220,
			ActiveMult:     0.85,
			OtherMult:      0.45,
			Friction:       0.88,
			VelocitySmooth: 0.12,
			SkewScale:      0.85,
			SkewMax:        6,
			SkewSmooth:     0.09,
			BlurHover:      24,
			BlurOverlay:    28,
			BlurSmooth:     0.12,
			IdleAfter:      700 * time.Millisecond,
			IdlePush:       0.08,
			RecycleGuard:   200,
			SpeedMin:       0.35,
			SpeedSpread:    0.6,
		},
		Overlay: Overlay{
			CloseDelay:      420 * time.Millisecond,
			RailWidth:       32,
			SpringFrequency: 6,
			SpringDamping:   0.9,
		},
		Layout: Layout{
			Columns:      4,
			UnitsPerRow:  20,
			GapRows:      1,
			MinWidth:     60,
			WheelStep:    100,
			KeyStep:      60,
			ShearFactor:  0.5,
			MinPerColumn: 6,
		},
		About: defaultAbout,
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values that would destabilize the simulation.
func (c Config) Validate() error {
	p := c.Physics
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case p.Friction <= 0 || p.Friction > 1:
		return fmt.Errorf("%w: friction must be in (0,1], got %v", ErrInvalid, p.Friction)
	case !unit(p.VelocitySmooth), !unit(p.SkewSmooth), !unit(p.BlurSmooth):
		return fmt.Errorf("%w: smoothing factors must be in (0,1]", ErrInvalid)
	case p.WheelClamp < 0 || p.SkewMax < 0:
		return fmt.Errorf("%w: clamps must not be negative", ErrInvalid)
	case p.RecycleGuard <= 0:
		return fmt.Errorf("%w: recycle_guard must be positive, got %d", ErrInvalid, p.RecycleGuard)
	case c.Overlay.CloseDelay < 0:
		return fmt.Errorf("%w: close_delay must not be negative", ErrInvalid)
	case c.Layout.Columns <= 0:
		return fmt.Errorf("%w: columns must be positive, got %d", ErrInvalid, c.Layout.Columns)
	case c.Layout.UnitsPerRow <= 0:
		return fmt.Errorf("%w: units_per_row must be positive", ErrInvalid)
	case c.Layout.GapRows < 0:
		return fmt.Errorf("%w: gap_rows must not be negative", ErrInvalid)
	}
	return nil
}

func unit(v float64) bool {
	return v > 0 && v <= 1
}
