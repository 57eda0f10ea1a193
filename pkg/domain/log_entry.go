package domain

// LogSection is the display data of a campaign log section.
type LogSection struct {
	Section string `json:"section"`
}

// LogEntryType is the discriminator of the LogEntry sum type.
type LogEntryType string

const (
	LogEntryTypeSectionCount      LogEntryType = "section_count"
	LogEntryTypeCard              LogEntryType = "card"
	LogEntryTypeText              LogEntryType = "text"
	LogEntryTypeSupplies          LogEntryType = "supplies"
	LogEntryTypeInvestigatorCount LogEntryType = "investigator_count"
)

// LogEntry is a campaign log reference resolved for display.
type LogEntry interface {
	LogEntryType() LogEntryType
	SectionTitle() string
	WithSection(section string) LogEntry
}

// SectionCountEntry displays the number of entries in a section.
type SectionCountEntry struct {
	Section string `json:"section"`
}

// CardEntry displays a story card.
type CardEntry struct {
	Section string `json:"section"`
	Code    string `json:"code"`
}

// TextEntry displays authored text, with optional gendered variants.
type TextEntry struct {
	Section       string `json:"section"`
	Text          string `json:"text"`
	FeminineText  string `json:"feminine_text,omitempty"`
	NonbinaryText string `json:"nonbinary_text,omitempty"`
}

// SuppliesEntry displays a supply.
type SuppliesEntry struct {
	Section string `json:"section"`
	Supply  Supply `json:"supply"`
}

// InvestigatorCountEntry displays a per-investigator count.
type InvestigatorCountEntry struct {
	Section string `json:"section"`
}

func (SectionCountEntry) LogEntryType() LogEntryType      { return LogEntryTypeSectionCount }
func (CardEntry) LogEntryType() LogEntryType              { return LogEntryTypeCard }
func (TextEntry) LogEntryType() LogEntryType              { return LogEntryTypeText }
func (SuppliesEntry) LogEntryType() LogEntryType          { return LogEntryTypeSupplies }
func (InvestigatorCountEntry) LogEntryType() LogEntryType { return LogEntryTypeInvestigatorCount }

func (e SectionCountEntry) SectionTitle() string      { return e.Section }
func (e CardEntry) SectionTitle() string              { return e.Section }
func (e TextEntry) SectionTitle() string              { return e.Section }
func (e SuppliesEntry) SectionTitle() string          { return e.Section }
func (e InvestigatorCountEntry) SectionTitle() string { return e.Section }

func (e SectionCountEntry) WithSection(section string) LogEntry {
	e.Section = section
	return e
}

func (e CardEntry) WithSection(section string) LogEntry {
	e.Section = section
	return e
}

func (e TextEntry) WithSection(section string) LogEntry {
	e.Section = section
	return e
}

func (e SuppliesEntry) WithSection(section string) LogEntry {
	e.Section = section
	return e
}

func (e InvestigatorCountEntry) WithSection(section string) LogEntry {
	e.Section = section
	return e
}
