package complication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

var allTags = action.RiskTags{
	action.RiskDangerous, action.RiskMysterious, action.RiskValuable, action.RiskHostile,
	action.RiskFirstTime, action.RiskSocial, action.RiskMagical, action.RiskCursed,
	action.RiskSacred, action.RiskStealth,
}

var allPhases = []Phase{PhaseSetup, PhaseRising, PhaseClimax, PhaseFalling, PhaseResolution}

func TestCalculate_Breakdown(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	p := calc.Calculate(Inputs{
		RiskTags:               action.RiskTags{action.RiskDangerous, action.RiskFirstTime},
		TurnsSinceComplication: NoHistory,
		SubturnIndex:           1,
		LocationDanger:         world.DangerDangerous,
	})

	assert.InDelta(t, 0.05, p.Base, 1e-9)
	assert.Zero(t, p.ArcPhase)
	assert.Zero(t, p.ArcTension)
	assert.InDelta(t, 0.08, p.RiskTags[action.RiskDangerous], 1e-9)
	assert.InDelta(t, 0.04, p.RiskTags[action.RiskFirstTime], 1e-9)
	assert.InDelta(t, 0.02, p.SubturnIndex, 1e-9)
	assert.InDelta(t, 0.10, p.LocationDanger, 1e-9)
	assert.InDelta(t, 1.0, p.CooldownMultiplier, 1e-9)
	assert.InDelta(t, 0.29, p.FinalChance, 1e-9)
	assert.False(t, p.Capped)
}

func TestCalculate_Deterministic(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	in := Inputs{
		RiskTags:               action.RiskTags{action.RiskMagical, action.RiskSocial},
		Arc:                    &Arc{Key: "heist", Phase: PhaseRising, Tension: 70},
		TurnsSinceComplication: 3,
		SubturnIndex:           2,
		LocationDanger:         world.DangerRisky,
	}

	first := calc.Calculate(in)
	for range 50 {
		assert.Equal(t, first, calc.Calculate(in))
	}
}

func TestCalculate_HardCap(t *testing.T) {
	for _, maxChance := range []float64{0.2, DefaultMaxChance, 0.9} {
		calc := NewCalculator(Config{BaseChance: DefaultBaseChance, MaxChance: maxChance})
		for _, phase := range allPhases {
			for tension := 0; tension <= 120; tension += 10 {
				for n := 0; n <= len(allTags); n++ {
					p := calc.Calculate(Inputs{
						RiskTags:               allTags[:n],
						Arc:                    &Arc{Phase: phase, Tension: tension},
						TurnsSinceComplication: NoHistory,
						SubturnIndex:           10,
						LocationDanger:         world.DangerHostile,
					})
					require.LessOrEqual(t, p.FinalChance, maxChance)
				}
			}
		}
	}

	p := NewCalculator(DefaultConfig()).Calculate(Inputs{RiskTags: allTags, LocationDanger: world.DangerHostile, TurnsSinceComplication: NoHistory})
	assert.True(t, p.Capped)
	assert.InDelta(t, DefaultMaxChance, p.FinalChance, 1e-9)
	assert.Greater(t, p.Subtotal, DefaultMaxChance)
}

func TestCalculate_CooldownMonotonic(t *testing.T) {
	calc := NewCalculator(Config{BaseChance: 0.05, MaxChance: 1})
	in := Inputs{
		RiskTags:       action.RiskTags{action.RiskHostile, action.RiskDangerous},
		Arc:            &Arc{Phase: PhaseClimax, Tension: 90},
		SubturnIndex:   3,
		LocationDanger: world.DangerDangerous,
	}

	prev := -1.0
	var plateau float64
	for turns := 0; turns <= 12; turns++ {
		in.TurnsSinceComplication = turns
		p := calc.Calculate(in)
		assert.GreaterOrEqual(t, p.FinalChance, prev, "turns=%d", turns)
		prev = p.FinalChance
		if turns == RecoveryWindowTurns {
			plateau = p.FinalChance
		}
		if turns > RecoveryWindowTurns {
			assert.InDelta(t, plateau, p.FinalChance, 1e-9, "turns=%d", turns)
		}
	}
}

func TestCooldownMultiplier(t *testing.T) {
	tests := []struct {
		turns int
		want  float64
	}{
		{NoHistory, 1.0},
		{0, 0.2},
		{1, 0.2},
		{2, 0.2},
		{3, 0.4},
		{4, 0.6},
		{5, 0.8},
		{6, 1.0},
		{20, 1.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, CooldownMultiplier(tt.turns), 1e-9, "turns=%d", tt.turns)
	}
}

func TestCalculate_Terms(t *testing.T) {
	calc := NewCalculator(Config{BaseChance: 0.05, MaxChance: 1})

	t.Run("unknown tags contribute nothing", func(t *testing.T) {
		p := calc.Calculate(Inputs{RiskTags: action.RiskTags{"haunted"}, TurnsSinceComplication: NoHistory})
		assert.Empty(t, p.RiskTags)
		assert.InDelta(t, 0.05, p.FinalChance, 1e-9)
	})

	t.Run("duplicate tags count once", func(t *testing.T) {
		p := calc.Calculate(Inputs{RiskTags: action.RiskTags{action.RiskCursed, action.RiskCursed}, TurnsSinceComplication: NoHistory})
		assert.InDelta(t, 0.15, p.FinalChance, 1e-9)
	})

	t.Run("tension above midpoint only", func(t *testing.T) {
		for tension, want := range map[int]float64{0: 0, 50: 0, 75: 0.05, 100: 0.10, 150: 0.10} {
			p := calc.Calculate(Inputs{Arc: &Arc{Phase: PhaseSetup, Tension: tension}})
			assert.InDelta(t, want, p.ArcTension, 1e-9, "tension=%d", tension)
		}
	})

	t.Run("phase ordering", func(t *testing.T) {
		setup := calc.Calculate(Inputs{Arc: &Arc{Phase: PhaseSetup}})
		climax := calc.Calculate(Inputs{Arc: &Arc{Phase: PhaseClimax}})
		assert.Less(t, setup.ArcPhase, climax.ArcPhase)
		for _, phase := range allPhases {
			p := calc.Calculate(Inputs{Arc: &Arc{Phase: phase}})
			assert.GreaterOrEqual(t, p.ArcPhase, setup.ArcPhase)
			assert.LessOrEqual(t, p.ArcPhase, climax.ArcPhase)
		}
	})

	t.Run("subturn index caps at four", func(t *testing.T) {
		prev := -1.0
		for i := 0; i <= 4; i++ {
			p := calc.Calculate(Inputs{SubturnIndex: i})
			assert.Greater(t, p.SubturnIndex, prev)
			prev = p.SubturnIndex
		}
		assert.InDelta(t, prev, calc.Calculate(Inputs{SubturnIndex: 9}).SubturnIndex, 1e-9)
	})

	t.Run("danger ordering", func(t *testing.T) {
		levels := []world.DangerLevel{world.DangerSafe, world.DangerNeutral, world.DangerRisky, world.DangerDangerous, world.DangerHostile}
		prev := -1.0
		for _, lvl := range levels {
			p := calc.Calculate(Inputs{LocationDanger: lvl})
			assert.Greater(t, p.LocationDanger, prev, "danger=%s", lvl)
			prev = p.LocationDanger
		}
	})
}

func TestNewCalculator_Defaults(t *testing.T) {
	calc := NewCalculator(Config{BaseChance: -1})
	assert.InDelta(t, DefaultMaxChance, calc.MaxChance(), 1e-9)
	p := calc.Calculate(Inputs{TurnsSinceComplication: NoHistory})
	assert.InDelta(t, DefaultBaseChance, p.FinalChance, 1e-9)
}

func TestNewCalculator_ZeroBaseIsKept(t *testing.T) {
	calc := NewCalculator(Config{BaseChance: 0, MaxChance: 0.35})
	p := calc.Calculate(Inputs{TurnsSinceComplication: NoHistory})
	assert.Zero(t, p.Base)
	assert.Zero(t, p.FinalChance)

	p = calc.Calculate(Inputs{RiskTags: action.RiskTags{action.RiskDangerous}, TurnsSinceComplication: NoHistory})
	assert.InDelta(t, tagWeights[action.RiskDangerous], p.FinalChance, 1e-9)
}

func TestTriggers(t *testing.T) {
	assert.True(t, FixedTrigger(0.1)(0.2))
	assert.False(t, FixedTrigger(0.3)(0.2))

	never := RandomTrigger(constSource(0))
	assert.False(t, never(0), "zero chance never fires")
	assert.True(t, RandomTrigger(constSource(0.05))(0.1))
	assert.False(t, RandomTrigger(constSource(0.5))(0.1))
}

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }
