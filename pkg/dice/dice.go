// Package dice adapts github.com/jwebster45206/d20 rolling to the engine.
//
// Every roll is either a d20 notation string ("1d6+2") or a d20 RollBuilder
// started on the roller handed to a build func, so actor helpers such as
// d20.Actor.AttackRoll and SkillCheck supply their own modifiers. Rolls are
// deterministic with respect to the seed of the Roller they are drawn from.
package dice

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jwebster45206/d20"
)

// BuildFunc starts a roll on r.
type BuildFunc func(r *d20.Roller) (*d20.RollBuilder, error)

// Roller resolves d20 rolls.
type Roller interface {
	// Resolve executes the roll returned by build.
	Resolve(build BuildFunc) (d20.RollOutcome, error)
	// Roll rolls dice notation such as "1d20" or "2d6+3".
	Roll(notation string) (d20.RollOutcome, error)
}

// Seeded rolls with a seeded d20.Roller. Safe for concurrent use.
type Seeded struct {
	mu sync.Mutex
	r  *d20.Roller
}

// drawFaces is the die size behind Float64.
const drawFaces = 1 << 30

// NewRoller creates a roller seeded with seed.
func NewRoller(seed int64) *Seeded {
	return &Seeded{r: d20.NewRoller(seed)}
}

func (s *Seeded) Resolve(build BuildFunc) (d20.RollOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := build(s.r)
	if err != nil {
		return d20.RollOutcome{}, err
	}
	return b.Roll()
}

func (s *Seeded) Roll(notation string) (d20.RollOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Roll(notation)
}

// Float64 draws a uniform value in [0, 1) from the same source.
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.r.Dice(1, drawFaces).Roll()
	if err != nil {
		return 0
	}
	return float64(out.Value-1) / drawFaces
}

// Scripted replaces die faces with a fixed sequence, cycling when exhausted.
// Rolls are still built and parsed by d20, so modifiers and notation errors
// behave as in play. Faces are clamped into [1, sides]. Only normal rolls are
// supported; advantage and disadvantage totals are not rescripted.
type Scripted struct {
	mu     sync.Mutex
	values []int
	next   int
	shadow *d20.Roller
}

// NewScripted creates a roller that returns values in order.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values, shadow: d20.NewRoller(0)}
}

func (s *Scripted) Resolve(build BuildFunc) (d20.RollOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := build(s.shadow)
	if err != nil {
		return d20.RollOutcome{}, err
	}
	out, err := b.Roll()
	if err != nil {
		return d20.RollOutcome{}, err
	}
	return s.rescript(out), nil
}

func (s *Scripted) Roll(notation string) (d20.RollOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.shadow.Roll(notation)
	if err != nil {
		return d20.RollOutcome{}, err
	}
	return s.rescript(out), nil
}

func (s *Scripted) rescript(out d20.RollOutcome) d20.RollOutcome {
	var count, faces uint
	if _, err := fmt.Sscanf(out.Detail, "Rolled %dd%d", &count, &faces); err != nil {
		faces = 0
	}
	mods := out.Value
	for _, v := range out.DiceRolls {
		mods -= v
	}

	rolls := make([]int, len(out.DiceRolls))
	total := mods
	for i := range rolls {
		v := 1
		if len(s.values) > 0 {
			v = s.values[s.next%len(s.values)]
			s.next++
		}
		v = max(v, 1)
		if faces > 0 {
			v = min(v, int(faces))
		}
		rolls[i] = v
		total += v
	}

	var modifiers []d20.Modifier
	if mods != 0 {
		modifiers = append(modifiers, d20.NewModifier("modifiers", mods))
	}
	return d20.NewRollOutcome(count, faces, rolls, modifiers, total)
}

// Natural returns the first die face of a roll.
func Natural(out d20.RollOutcome) int {
	if len(out.DiceRolls) == 0 {
		return 0
	}
	return out.DiceRolls[0]
}

// Sum adds the die faces of a roll, ignoring modifiers.
func Sum(out d20.RollOutcome) int {
	total := 0
	for _, v := range out.DiceRolls {
		total += v
	}
	return total
}

// Valid reports whether notation parses as d20 dice notation.
func Valid(notation string) bool {
	_, err := d20.NewRoller(0).Roll(notation)
	return err == nil
}

// WithModifier folds mod into the flat modifier of notation:
// WithModifier("1d8+1", 2) is "1d8+3".
func WithModifier(notation string, mod int) string {
	notation = strings.ToLower(strings.TrimSpace(notation))
	base := notation
	if i := strings.LastIndexAny(notation, "+-"); i > strings.IndexByte(notation, 'd') {
		if flat, err := strconv.Atoi(notation[i:]); err == nil {
			base = notation[:i]
			mod += flat
		}
	}
	switch {
	case mod > 0:
		return fmt.Sprintf("%s+%d", base, mod)
	case mod < 0:
		return fmt.Sprintf("%s%d", base, mod)
	}
	return base
}

// Modifier converts an ability score into its tabletop modifier.
func Modifier(score int) int {
	// floor((score-10)/2) for negative values as well
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}
