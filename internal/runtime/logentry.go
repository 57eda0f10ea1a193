package runtime

import (
	"regexp"

	"github.com/aretw0/campaignguide/pkg/domain"
)

// Pseudo entry ids and sections understood by LogEntry.
const (
	CountEntryID      = "$count"
	NumEntriesEntryID = "$num_entries"
	InputValueSection = "$input_value"
)

var cardCode = regexp.MustCompile(`\d\d\d\d\d[a-z]?`)

// LogSections returns the campaign log schema.
func (g *Guide) LogSections() []domain.LogSectionDef {
	return g.campaign.Campaign.CampaignLog
}

// LogSection returns the display data of a log section.
func (g *Guide) LogSection(sectionID string) (domain.LogSection, bool) {
	def, ok := g.logSectionDef(sectionID)
	if !ok {
		return domain.LogSection{}, false
	}
	return domain.LogSection{Section: def.Title}, true
}

// LogPartners returns the partners of a partner section.
func (g *Guide) LogPartners(sectionID string) []domain.Partner {
	def, ok := g.logSectionDef(sectionID)
	if !ok || def.Type != domain.LogSectionPartner {
		return nil
	}
	return def.Partners
}

func (g *Guide) logSectionDef(sectionID string) (domain.LogSectionDef, bool) {
	for _, s := range g.campaign.Campaign.CampaignLog {
		if s.ID == sectionID {
			return s, true
		}
	}
	return domain.LogSectionDef{}, false
}

func (g *Guide) logTextSection(sectionID string) (domain.LogTextSection, bool) {
	for _, s := range g.log.Sections {
		if s.Section == sectionID {
			return s, true
		}
	}
	return domain.LogTextSection{}, false
}

// LogEntry resolves a campaign log reference for display. The section
// type decides first; then the id may be a pseudo id, a card code, or an
// authored entry. Unknown ids fall back to the $input_value section and keep
// the requested section id as their title. hack forces investigator_count
// sections through the regular lookup. Failures are *domain.LogEntryError.
func (g *Guide) LogEntry(sectionID, id string, hack bool) (domain.LogEntry, error) {
	section, ok := g.logSectionDef(sectionID)
	if !ok {
		return nil, &domain.LogEntryError{Section: sectionID, Reason: "unknown section"}
	}

	switch {
	case section.Type == domain.LogSectionSupplies:
		for _, supply := range g.log.Supplies {
			if supply.ID == id {
				return domain.SuppliesEntry{Section: section.Title, Supply: supply}, nil
			}
		}
		return nil, &domain.LogEntryError{Section: sectionID, ID: id, Reason: "unknown supply"}
	case section.Type == domain.LogSectionInvestigatorCount && !hack:
		return domain.InvestigatorCountEntry{Section: section.Title}, nil
	case id == CountEntryID:
		return domain.SectionCountEntry{Section: section.Title}, nil
	case cardCode.MatchString(id):
		return domain.CardEntry{Section: section.Title, Code: id}, nil
	}

	text, hasText := g.logTextSection(sectionID)
	if hasText {
		if id == NumEntriesEntryID {
			return domain.SectionCountEntry{Section: section.Title}, nil
		}
		for _, entry := range text.Entries {
			if entry.ID != id {
				continue
			}
			if entry.Text == "" {
				return domain.TextEntry{
					Section:       section.Title,
					Text:          entry.MasculineText,
					FeminineText:  entry.FeminineText,
					NonbinaryText: entry.NonbinaryText,
				}, nil
			}
			return domain.TextEntry{Section: section.Title, Text: entry.Text}, nil
		}
	}

	if sectionID != InputValueSection {
		fallback, err := g.LogEntry(InputValueSection, id, false)
		if err != nil {
			return nil, &domain.LogEntryError{Section: sectionID, ID: id, Reason: "not found, checked input value too"}
		}
		return fallback.WithSection(sectionID), nil
	}
	return nil, &domain.LogEntryError{Section: sectionID, ID: id, Reason: "not found"}
}
