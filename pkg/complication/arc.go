package complication

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// Phase is the position of a story arc in its dramatic shape.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseRising     Phase = "rising"
	PhaseClimax     Phase = "climax"
	PhaseFalling    Phase = "falling"
	PhaseResolution Phase = "resolution"
)

// MaxTension caps arc tension.
const MaxTension = 100

// Arc is the ambient story signal a complication can draw on.
type Arc struct {
	Key     string `json:"key" yaml:"key"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Phase   Phase  `json:"phase" yaml:"phase"`
	Tension int    `json:"tension" yaml:"tension"` // 0..100
}

// ArcSource looks up the most relevant active arc. A nil arc with a nil
// error means no arc is active.
type ArcSource interface {
	ActiveArc(ctx context.Context) (*Arc, error)
}

// TensionAdjuster applies tension_change effects.
type TensionAdjuster interface {
	AdjustTension(ctx context.Context, arcKey string, delta int) (int, error)
}

// StaticArcs is an in-memory ArcSource. The active arc is the one with the
// highest tension, ties broken by key.
type StaticArcs struct {
	mu   sync.RWMutex
	arcs []Arc
}

// NewStaticArcs creates an arc source from a fixed list.
func NewStaticArcs(arcs ...Arc) *StaticArcs {
	return &StaticArcs{arcs: slices.Clone(arcs)}
}

func (s *StaticArcs) ActiveArc(ctx context.Context) (*Arc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.arcs) == 0 {
		return nil, nil
	}
	best := slices.MaxFunc(s.arcs, func(a, b Arc) int {
		if c := cmp.Compare(a.Tension, b.Tension); c != 0 {
			return c
		}
		return cmp.Compare(b.Key, a.Key)
	})
	return &best, nil
}

// AdjustTension shifts an arc's tension, clamped to [0, MaxTension]. An
// empty key targets the active arc.
func (s *StaticArcs) AdjustTension(ctx context.Context, arcKey string, delta int) (int, error) {
	if arcKey == "" {
		active, _ := s.ActiveArc(ctx)
		if active == nil {
			return 0, fmt.Errorf("no active arc")
		}
		arcKey = active.Key
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.arcs {
		if s.arcs[i].Key == arcKey {
			s.arcs[i].Tension = min(MaxTension, max(0, s.arcs[i].Tension+delta))
			return s.arcs[i].Tension, nil
		}
	}
	return 0, fmt.Errorf("arc %q not found", arcKey)
}
