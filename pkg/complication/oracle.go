package complication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// Generator is a generative-text provider. It may be slow, unavailable or
// return unstructured text.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CheckRequest carries one interrupt query.
type CheckRequest struct {
	SessionID      string
	Turn           int
	ActionsSummary string
	SceneContext   string
	LocationName   string
	RiskTags       action.RiskTags
	// TurnsSinceComplication is looked up from history when nil.
	TurnsSinceComplication *int
	SubturnIndex           int
	LocationDanger         world.DangerLevel
}

// OracleResult is the outcome of a check. Complication is set only when
// Triggered is true.
type OracleResult struct {
	Complication *Complication   `json:"complication,omitempty"`
	Probability  Probability     `json:"probability"`
	Triggered    bool            `json:"triggered"`
	Reason       string          `json:"reason"`
	RiskTags     action.RiskTags `json:"risk_tags,omitempty"`
	Arc          *Arc            `json:"arc,omitempty"`
}

// Deps are the collaborators of an Oracle. Only Calculator and Trigger are
// required; a nil Generator always uses the fallback table.
type Deps struct {
	Calculator *Calculator
	Trigger    Trigger
	Generator  Generator
	History    History
	Arcs       ArcSource
}

// Oracle decides whether a complication fires and produces its content.
type Oracle struct {
	calc    *Calculator
	trigger Trigger
	gen     Generator
	history History
	arcs    ArcSource
	logger  *slog.Logger
}

// NewOracle wires an oracle. It panics when Calculator or Trigger is missing.
func NewOracle(deps Deps, logger *slog.Logger) *Oracle {
	if deps.Calculator == nil || deps.Trigger == nil {
		panic("complication: oracle requires a calculator and a trigger")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Oracle{
		calc:    deps.Calculator,
		trigger: deps.Trigger,
		gen:     deps.Generator,
		history: deps.History,
		arcs:    deps.Arcs,
		logger:  logger,
	}
}

// Check computes the probability, draws, and on a hit synthesizes a
// complication. It never returns an error: collaborator faults degrade to
// no arc, no history or the fallback table.
func (o *Oracle) Check(ctx context.Context, req CheckRequest) OracleResult {
	arc := o.activeArc(ctx)

	turnsSince := NoHistory
	if req.TurnsSinceComplication != nil {
		turnsSince = *req.TurnsSinceComplication
	} else if o.history != nil {
		n, err := TurnsSince(ctx, o.history, req.SessionID, req.Turn)
		if err != nil {
			o.logger.Warn("Failed to read complication history", "session_id", req.SessionID, "error", err)
		}
		turnsSince = n
	}

	prob := o.calc.Calculate(Inputs{
		RiskTags:               req.RiskTags,
		Arc:                    arc,
		TurnsSinceComplication: turnsSince,
		SubturnIndex:           req.SubturnIndex,
		LocationDanger:         req.LocationDanger,
	})

	res := OracleResult{Probability: prob, RiskTags: req.RiskTags, Arc: arc}
	if !o.trigger(prob.FinalChance) {
		res.Reason = fmt.Sprintf("no complication (chance %.2f)", prob.FinalChance)
		o.logger.Debug("Complication not triggered",
			"subturn_index", req.SubturnIndex,
			"final_chance", prob.FinalChance)
		return res
	}

	c, source := o.synthesize(ctx, req, arc)
	if arc != nil && c.SourceArcKey == "" {
		c.SourceArcKey = arc.Key
	}
	res.Complication = &c
	res.Triggered = true
	res.Reason = fmt.Sprintf("%s complication from %s (chance %.2f)", c.Kind, source, prob.FinalChance)
	o.logger.Info("Complication triggered",
		"kind", c.Kind,
		"source", source,
		"subturn_index", req.SubturnIndex,
		"final_chance", prob.FinalChance)
	return res
}

// RecordComplication appends a triggered complication to history.
func (o *Oracle) RecordComplication(ctx context.Context, sessionID string, turn int, res OracleResult) error {
	if res.Complication == nil {
		return errors.New("no complication to record")
	}
	if o.history == nil {
		return nil
	}
	rec := Record{
		SessionID:   sessionID,
		Turn:        turn,
		Kind:        res.Complication.Kind,
		Description: res.Complication.Description,
		Effects:     res.Complication.Effects,
		Probability: res.Probability.FinalChance,
		RiskTags:    res.RiskTags.Strings(),
		ArcKey:      res.Complication.SourceArcKey,
		CreatedAt:   time.Now().UTC(),
	}
	if err := o.history.Append(ctx, rec); err != nil {
		return fmt.Errorf("failed to record complication: %w", err)
	}
	return nil
}

func (o *Oracle) activeArc(ctx context.Context) *Arc {
	if o.arcs == nil {
		return nil
	}
	arc, err := o.arcs.ActiveArc(ctx)
	if err != nil {
		o.logger.Warn("Failed to look up active arc", "error", err)
		return nil
	}
	return arc
}

func (o *Oracle) synthesize(ctx context.Context, req CheckRequest, arc *Arc) (c Complication, source string) {
	if o.gen == nil {
		return Fallback(req.RiskTags, req.LocationName), "fallback"
	}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Complication generator panicked", "panic", r)
			c, source = Fallback(req.RiskTags, req.LocationName), "fallback"
		}
	}()

	text, err := o.gen.Complete(ctx, buildPrompt(req, arc))
	if err != nil {
		o.logger.Warn("Complication generation failed, using fallback", "error", err)
		return Fallback(req.RiskTags, req.LocationName), "fallback"
	}
	parsed, err := ParseComplication(text)
	if err != nil {
		o.logger.Warn("Malformed complication output, using fallback", "error", err)
		return Fallback(req.RiskTags, req.LocationName), "fallback"
	}
	return parsed, "generator"
}

const complicationPrompt = `You write complications for a turn-based text adventure. A complication adds a consequence to what the player is doing. It never makes the player's action fail.

Player actions: %s
Scene: %s
Location: %s (%s)
Risk tags: %s
Story thread: %s

Respond with ONLY a JSON object in this shape:
{"type": "discovery|interruption|cost|twist", "description": "one or two sentences", "mechanical_effects": [{"type": "hp_loss", "target": "", "value": 2}], "new_facts": [], "interrupts_action": false, "foreshadowing": ""}

Allowed effect types: hp_loss, hp_gain, resource_loss, resource_gain, status_add, status_remove, relationship_change, time_advance, spawn_entity, reveal_fact, tension_change.
For spawn_entity put the creature's name in "value" and set "hostile": true if it attacks.
Keep costs small. Do not narrate the player's decisions.`

func buildPrompt(req CheckRequest, arc *Arc) string {
	thread := "none"
	if arc != nil {
		thread = fmt.Sprintf("%s (phase %s, tension %d)", arc.Title, arc.Phase, arc.Tension)
	}
	tags := "none"
	if len(req.RiskTags) > 0 {
		tags = strings.Join(req.RiskTags.Strings(), ", ")
	}
	return fmt.Sprintf(complicationPrompt,
		req.ActionsSummary, req.SceneContext, req.LocationName, req.LocationDanger, tags, thread)
}

type wireEffect struct {
	Type    string          `json:"type"`
	Target  string          `json:"target"`
	Value   json.RawMessage `json:"value"`
	Amount  *int            `json:"amount"`
	Hostile bool            `json:"hostile"`
}

type wireComplication struct {
	Type             string       `json:"type"`
	Description      string       `json:"description"`
	Effects          []wireEffect `json:"mechanical_effects"`
	NewFacts         []string     `json:"new_facts"`
	InterruptsAction bool         `json:"interrupts_action"`
	SourceArcKey     string       `json:"source_arc_key"`
	Foreshadowing    string       `json:"foreshadowing"`
}

// ParseComplication extracts a complication from generator output. Code
// fences and surrounding prose are ignored; unknown effect types are dropped.
func ParseComplication(text string) (Complication, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Complication{}, errors.New("no JSON object in output")
	}

	var w wireComplication
	if err := json.Unmarshal([]byte(text[start:end+1]), &w); err != nil {
		return Complication{}, fmt.Errorf("failed to parse complication JSON: %w", err)
	}

	c := Complication{
		Kind:             Kind(strings.ToLower(strings.TrimSpace(w.Type))),
		Description:      strings.TrimSpace(w.Description),
		NewFacts:         w.NewFacts,
		InterruptsAction: w.InterruptsAction,
		SourceArcKey:     w.SourceArcKey,
		Foreshadowing:    w.Foreshadowing,
	}
	if !c.Kind.Valid() {
		return Complication{}, fmt.Errorf("unknown complication type %q", w.Type)
	}
	if c.Description == "" {
		return Complication{}, errors.New("complication has no description")
	}

	for _, we := range w.Effects {
		e := Effect{
			Type:    EffectType(strings.ToLower(strings.TrimSpace(we.Type))),
			Target:  we.Target,
			Hostile: we.Hostile,
		}
		if !e.Type.Valid() {
			continue
		}
		if we.Amount != nil {
			e.Amount = *we.Amount
		}
		decodeValue(we.Value, &e)
		c.Effects = append(c.Effects, e)
	}
	return c, nil
}

// decodeValue accepts numbers, numeric strings and plain strings.
func decodeValue(raw json.RawMessage, e *Effect) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		e.Amount = int(n)
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		e.Amount = n
		return
	}
	e.Value = s
	if e.Type == EffectSpawnEntity && strings.Contains(strings.ToLower(e.Target), "hostile") {
		e.Hostile = true
	}
}
