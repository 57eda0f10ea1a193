package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/campaignguide/pkg/domain"
)

// Overlay carries the walk state to paint over the campaign graph.
type Overlay struct {
	// Statuses maps a plain scenario id to its latest trace status.
	Statuses map[string]domain.Status
}

// OverlayFromTrace collects the statuses of a processed campaign. Replays
// paint their base scenario with the status of the latest attempt.
func OverlayFromTrace(trace *domain.ProcessedCampaign) *Overlay {
	o := &Overlay{Statuses: make(map[string]domain.Status)}
	if trace == nil {
		return o
	}
	for _, s := range trace.Scenarios {
		o.Statuses[s.ID.ScenarioID] = s.Status
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the campaign.
// Shapes follow the scenario type:
// - Campaign setup: ((Circle))
// - Interlude: [/Parallelogram/]
// - Epilogue: ([Stadium])
// - Placeholder: {{Hexagon}}
// - Default: [Rectangle]
// Solid arrows follow the play order, labeled arrows the next_scenario
// effects of each script and dotted arrows attach side scenarios to their
// main scenario.
func GenerateMermaid(content domain.Content, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	campaign := content.Campaign
	writeNode(&sb, domain.CampaignSetupID, campaignSetupLabel(campaign.Campaign), "((", "))")
	for _, s := range campaign.Scenarios {
		opener, closer := shape(s.Type)
		writeNode(&sb, s.ID, label(s), opener, closer)
	}
	for _, s := range content.SideCampaign.Scenarios {
		writeNode(&sb, s.ID, label(s), "[", "]")
	}

	prev := domain.CampaignSetupID
	for _, id := range campaign.Campaign.Scenarios {
		fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(prev), sanitizeMermaidID(id))
		prev = id
	}

	for _, s := range campaign.Scenarios {
		for _, target := range jumps(s.Steps) {
			fmt.Fprintf(&sb, "    %s -- \"next\" --> %s\n", sanitizeMermaidID(s.ID), sanitizeMermaidID(target))
		}
	}
	for _, target := range jumps(campaign.Campaign.Steps) {
		fmt.Fprintf(&sb, "    %s -- \"next\" --> %s\n", sanitizeMermaidID(domain.CampaignSetupID), sanitizeMermaidID(target))
	}

	for _, s := range content.SideCampaign.Scenarios {
		if s.MainScenarioID != "" {
			fmt.Fprintf(&sb, "    %s -.-> %s\n", sanitizeMermaidID(s.MainScenarioID), sanitizeMermaidID(s.ID))
		}
	}

	if overlay != nil && len(overlay.Statuses) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast regardless of theme.
		sb.WriteString("    classDef completed fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef started fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef playable fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef locked fill:#eeeeee,stroke:#9e9e9e,color:#000;\n")
		sb.WriteString("    classDef skipped fill:#ffcdd2,stroke:#c62828,stroke-dasharray:5 5,color:#000;\n")
		sb.WriteString("    classDef placeholder fill:#fff,stroke:#9e9e9e,stroke-dasharray:3 3,color:#000;\n")

		ids := make([]string, 0, len(overlay.Statuses))
		for id := range overlay.Statuses {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			fmt.Fprintf(&sb, "    class %s %s;\n", sanitizeMermaidID(id), overlay.Statuses[id])
		}
	}

	return sb.String()
}

func writeNode(sb *strings.Builder, id, text, opener, closer string) {
	fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(id), opener, escape(text), closer)
}

func shape(kind domain.ScenarioType) (string, string) {
	switch kind {
	case domain.ScenarioTypeInterlude:
		return "[/", "/]"
	case domain.ScenarioTypeEpilogue:
		return "([", "])"
	case domain.ScenarioTypePlaceholder:
		return "{{", "}}"
	}
	return "[", "]"
}

func label(s domain.Scenario) string {
	name := s.FullName
	if name == "" {
		name = s.ScenarioName
	}
	if name == "" || name == s.ID {
		return s.ID
	}
	if s.XPCost > 0 {
		return fmt.Sprintf("%s <br/> %d XP", name, s.XPCost)
	}
	return name
}

func campaignSetupLabel(c domain.CampaignData) string {
	if c.Name == "" {
		return "Campaign Setup"
	}
	return c.Name
}

// jumps lists the distinct base ids pinned by next_scenario effects.
func jumps(steps []domain.Step) []string {
	var out []string
	add := func(effects []domain.Effect) {
		for _, e := range effects {
			data, ok := e.(domain.CampaignDataEffect)
			if !ok || data.Setting != domain.SettingNextScenario || data.Value == "" {
				continue
			}
			target := data.Value
			if id, err := domain.ParseScenarioID(data.Value); err == nil {
				target = id.ScenarioID
			}
			if !slices.Contains(out, target) {
				out = append(out, target)
			}
		}
	}
	for _, step := range steps {
		switch s := step.(type) {
		case domain.GenericStep:
			add(s.Effects)
		case domain.InputStep:
			switch in := s.Input.(type) {
			case domain.ChooseOneInput:
				for _, c := range in.Choices {
					add(c.Effects)
				}
			case domain.CounterInput:
				add(in.Effects)
			case domain.PlayScenarioInput:
				for _, t := range in.CampaignLog {
					add(t.Effects)
				}
			}
		}
	}
	return out
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "#", "_")
	return s
}
