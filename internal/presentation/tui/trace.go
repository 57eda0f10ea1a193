package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/campaignguide/pkg/domain"
)

// TraceMarkdown renders a processed campaign as a markdown table, one row
// per trace entry, followed by the playable scenario if any.
func TraceMarkdown(title string, trace *domain.ProcessedCampaign) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if trace == nil || len(trace.Scenarios) == 0 {
		sb.WriteString("_No scenarios._\n")
		return sb.String()
	}

	sb.WriteString("| # | Scenario | Status | Steps | Undo |\n")
	sb.WriteString("|---|----------|--------|-------|------|\n")
	for i, s := range trace.Scenarios {
		name := s.ID.EncodedScenarioID
		if s.Scenario != nil && s.Scenario.FullName != "" {
			name = s.Scenario.FullName
			if s.ID.HasReplayAttempt {
				name = fmt.Sprintf("%s (replay %d)", name, s.ID.ReplayAttempt)
			}
		}
		if s.Side {
			name += " *(side)*"
		}
		undo := ""
		if s.CanUndo {
			undo = "yes"
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %d | %s |\n", i+1, cell(name), s.Status, len(s.Steps), undo)
	}

	if playable, ok := trace.Playable(); ok {
		fmt.Fprintf(&sb, "\n**Next:** %s\n", cell(displayName(playable)))
	}
	return sb.String()
}

func displayName(s domain.ProcessedScenario) string {
	if s.Scenario != nil && s.Scenario.FullName != "" {
		return s.Scenario.FullName
	}
	return s.ID.EncodedScenarioID
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
