package domain

// EntryKind is the type of one persisted decision.
type EntryKind string

const (
	EntryStartScenario     EntryKind = "start_scenario"
	EntryStartSideScenario EntryKind = "start_side_scenario"
	EntryChoice            EntryKind = "choice"
	EntryText              EntryKind = "text"
	EntryDecision          EntryKind = "decision"
	EntryCount             EntryKind = "count"
	EntryNumberChoices     EntryKind = "number_choices"
	EntryStringChoices     EntryKind = "string_choices"
	EntrySupplies          EntryKind = "supplies"
	EntryCampaignLink      EntryKind = "campaign_link"
	EntryInterScenario     EntryKind = "inter_scenario"
	EntryEmbark            EntryKind = "embark"
	EntryArrive            EntryKind = "arrive"
)

// NumberChoices maps an option id to the numbers chosen for it.
type NumberChoices map[string][]int

// StringChoices maps an option id to the strings chosen for it.
type StringChoices map[string][]string

// SupplyCounts maps investigator code to supply id to count.
type SupplyCounts map[string]map[string]int

// Trauma is the inter-scenario status of one investigator.
type Trauma struct {
	Physical int  `json:"physical,omitempty"`
	Mental   int  `json:"mental,omitempty"`
	Killed   bool `json:"killed,omitempty"`
	Insane   bool `json:"insane,omitempty"`
}

// InvestigatorTraumaData maps investigator code to trauma.
type InvestigatorTraumaData map[string]Trauma

// DeckEdits are deck changes deferred until the player upgrades.
type DeckEdits struct {
	DeckID       string         `json:"deck_id"`
	XPAdjustment int            `json:"xp_adjustment,omitempty"`
	StoryCounts  map[string]int `json:"story_counts,omitempty"`
}

// EmbarkData records travel between map locations.
type EmbarkData struct {
	Previous     string `json:"previous,omitempty"`
	Destination  string `json:"destination"`
	Time         int    `json:"time,omitempty"`
	NextScenario string `json:"next_scenario,omitempty"`
}

// LinkSide selects the direction of a cross-campaign link.
type LinkSide string

const (
	LinkSend    LinkSide = "send"
	LinkReceive LinkSide = "receive"
)

// SideScenarioType tells an authored side scenario from a player-defined one.
type SideScenarioType string

const (
	SideScenarioOfficial SideScenarioType = "official"
	SideScenarioCustom   SideScenarioType = "custom"
)

// SideScenarioEntry names the auxiliary scenario inserted after a scenario.
type SideScenarioEntry struct {
	Type     SideScenarioType `json:"side_scenario_type"`
	Scenario string           `json:"scenario"`
	Name     string           `json:"name,omitempty"`
	XPCost   int              `json:"xp_cost,omitempty"`
}

// Entry is one persisted player decision.
// Scenario is the encoded scenario id the decision is namespaced by.
type Entry struct {
	Kind     EntryKind `json:"type"`
	Scenario string    `json:"scenario,omitempty"`
	Step     string    `json:"step,omitempty"`

	Number     int                    `json:"number,omitempty"`
	Text       string                 `json:"text,omitempty"`
	InputID    string                 `json:"input_id,omitempty"`
	Bool       bool                   `json:"bool,omitempty"`
	Numbers    NumberChoices          `json:"numbers,omitempty"`
	Strings    StringChoices          `json:"strings,omitempty"`
	Supplies   SupplyCounts           `json:"supplies,omitempty"`
	DeckEdits  *DeckEdits             `json:"deck_edits,omitempty"`
	Trauma     InvestigatorTraumaData `json:"trauma,omitempty"`
	LogEntries []string               `json:"log_entries,omitempty"`
	Embark     *EmbarkData            `json:"embark,omitempty"`
	Side       *SideScenarioEntry     `json:"side,omitempty"`
}

// Snapshot is the persisted decision state of one campaign.
type Snapshot struct {
	CampaignID string  `json:"campaign_id"`
	Entries    []Entry `json:"entries"`
	Linked     []Entry `json:"linked,omitempty"`

	// Sealed holds the base64 ciphertext of the whole snapshot when it was
	// written through an encrypting store. Entries and Linked are empty then.
	Sealed string `json:"sealed,omitempty"`
}
