package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/turn-authority/internal/sim"
	"github.com/jwebster45206/turn-authority/pkg/subturn"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")) // green

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	complicationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")). // yellow
				Italic(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func renderReport(r *sim.Report, width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(strings.ToUpper(r.Scenario)) + "\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("session %s  seed %d", r.SessionID, r.Seed)) + "\n\n")

	for _, tr := range r.Turns {
		sb.WriteString(titleStyle.Render(fmt.Sprintf("Turn %d", tr.Number)) + "\n")
		for _, msg := range tr.Result.Errors {
			sb.WriteString(failStyle.Render("! "+msg) + "\n")
		}
		for _, s := range tr.Result.Steps {
			sb.WriteString(renderStep(s, width))
		}
		if tr.Result.ChoiceOffered {
			sb.WriteString(complicationStyle.Render(wordwrap.String(tr.Result.ContinuationPrompt, width)) + "\n")
		}
		if len(tr.Dropped) > 0 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("(%d action(s) not taken)", len(tr.Dropped))) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderStep(s subturn.Step, width int) string {
	var sb strings.Builder
	sb.WriteString(actionStyle.Render("> "+s.Action.Describe()) + "\n")

	switch {
	case !s.Validation.Valid:
		sb.WriteString(failStyle.Render(wordwrap.String(s.Validation.Reason, width)) + "\n")
		return sb.String()
	case s.Execution != nil:
		style := okStyle
		if !s.Execution.Success {
			style = failStyle
		}
		sb.WriteString(style.Render(wordwrap.String(s.Execution.Outcome, width)) + "\n")
	}
	if s.Complication != nil {
		sb.WriteString(complicationStyle.Render(wordwrap.String(s.Complication.Description, width)) + "\n")
		if s.Status != subturn.Continue {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("[%s: %s]", s.Status, s.Rule)) + "\n")
		}
	}
	if s.Oracle != nil {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  chance %.1f%%", s.Oracle.Probability.FinalChance*100)) + "\n")
	}
	return sb.String()
}
