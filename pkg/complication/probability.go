package complication

import (
	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// Defaults for Config.
const (
	DefaultBaseChance = 0.05
	DefaultMaxChance  = 0.35
)

// Cooldown windows, in turns since the last complication.
const (
	MinCooldownTurns    = 2
	RecoveryWindowTurns = 6
	suppressedFactor    = 0.2
)

const (
	tensionMidpoint = 50
	maxTensionBonus = 0.10
	subturnStep     = 0.02
	maxSubturnIndex = 4
)

var phaseWeights = map[Phase]float64{
	PhaseSetup:      0,
	PhaseResolution: 0.02,
	PhaseFalling:    0.04,
	PhaseRising:     0.06,
	PhaseClimax:     0.12,
}

var dangerWeights = map[world.DangerLevel]float64{
	world.DangerSafe:      0,
	world.DangerNeutral:   0.02,
	world.DangerRisky:     0.05,
	world.DangerDangerous: 0.10,
	world.DangerHostile:   0.15,
}

var tagWeights = map[action.RiskTag]float64{
	action.RiskDangerous:  0.08,
	action.RiskHostile:    0.10,
	action.RiskMysterious: 0.06,
	action.RiskValuable:   0.05,
	action.RiskFirstTime:  0.04,
	action.RiskSocial:     0.03,
	action.RiskMagical:    0.05,
	action.RiskCursed:     0.10,
	action.RiskSacred:     0.04,
	action.RiskStealth:    0.05,
}

// Config bounds the calculator.
type Config struct {
	BaseChance float64
	MaxChance  float64
}

// DefaultConfig returns the standard base and cap.
func DefaultConfig() Config {
	return Config{BaseChance: DefaultBaseChance, MaxChance: DefaultMaxChance}
}

// Inputs are the signals that feed one probability calculation.
type Inputs struct {
	RiskTags action.RiskTags
	// Arc is nil when no story arc is active.
	Arc *Arc
	// TurnsSinceComplication is negative when there is no history.
	TurnsSinceComplication int
	SubturnIndex           int
	LocationDanger         world.DangerLevel
}

// NoHistory marks Inputs with no previous complication.
const NoHistory = -1

// Probability is the final chance plus the full breakdown that produced it.
type Probability struct {
	FinalChance        float64                    `json:"final_chance"`
	Base               float64                    `json:"base"`
	ArcPhase           float64                    `json:"arc_phase"`
	ArcTension         float64                    `json:"arc_tension"`
	RiskTags           map[action.RiskTag]float64 `json:"risk_tags,omitempty"`
	SubturnIndex       float64                    `json:"subturn_index"`
	LocationDanger     float64                    `json:"location_danger"`
	Subtotal           float64                    `json:"subtotal"`
	CooldownMultiplier float64                    `json:"cooldown_multiplier"`
	Capped             bool                       `json:"capped"`
}

// Calculator computes complication probability. It holds no mutable state.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator. A negative base chance or a max
// chance outside (0, 1] falls back to the default; a zero base is kept.
func NewCalculator(cfg Config) *Calculator {
	if cfg.BaseChance < 0 {
		cfg.BaseChance = DefaultBaseChance
	}
	if cfg.MaxChance <= 0 || cfg.MaxChance > 1 {
		cfg.MaxChance = DefaultMaxChance
	}
	return &Calculator{cfg: cfg}
}

// MaxChance returns the hard cap.
func (c *Calculator) MaxChance() float64 {
	return c.cfg.MaxChance
}

// Calculate sums the additive terms, scales by cooldown and caps the result.
func (c *Calculator) Calculate(in Inputs) Probability {
	p := Probability{Base: c.cfg.BaseChance}

	if in.Arc != nil {
		p.ArcPhase = phaseWeights[in.Arc.Phase]
		p.ArcTension = tensionBonus(in.Arc.Tension)
	}

	tagTotal := 0.0
	for _, tag := range in.RiskTags {
		w, ok := tagWeights[tag]
		if !ok {
			continue
		}
		if p.RiskTags == nil {
			p.RiskTags = make(map[action.RiskTag]float64)
		}
		if _, seen := p.RiskTags[tag]; seen {
			continue
		}
		p.RiskTags[tag] = w
		tagTotal += w
	}

	p.SubturnIndex = float64(min(max(in.SubturnIndex, 0), maxSubturnIndex)) * subturnStep
	p.LocationDanger = dangerWeights[in.LocationDanger]

	p.Subtotal = p.Base + p.ArcPhase + p.ArcTension + tagTotal + p.SubturnIndex + p.LocationDanger
	p.CooldownMultiplier = CooldownMultiplier(in.TurnsSinceComplication)

	final := p.Subtotal * p.CooldownMultiplier
	if final > c.cfg.MaxChance {
		final = c.cfg.MaxChance
		p.Capped = true
	}
	p.FinalChance = max(final, 0)
	return p
}

func tensionBonus(tension int) float64 {
	if tension <= tensionMidpoint {
		return 0
	}
	t := min(tension, MaxTension)
	return float64(t-tensionMidpoint) / float64(MaxTension-tensionMidpoint) * maxTensionBonus
}

// CooldownMultiplier suppresses probability right after a complication and
// ramps linearly back to full strength over the recovery window.
func CooldownMultiplier(turnsSince int) float64 {
	switch {
	case turnsSince < 0 || turnsSince >= RecoveryWindowTurns:
		return 1.0
	case turnsSince < MinCooldownTurns:
		return suppressedFactor
	default:
		ramp := float64(turnsSince-MinCooldownTurns) / float64(RecoveryWindowTurns-MinCooldownTurns)
		return suppressedFactor + (1-suppressedFactor)*ramp
	}
}
