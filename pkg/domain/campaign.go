package domain

// ScenarioType classifies how a scenario participates in the campaign.
type ScenarioType string

const (
	ScenarioTypeScenario    ScenarioType = "scenario"
	ScenarioTypeInterlude   ScenarioType = "interlude"
	ScenarioTypeEpilogue    ScenarioType = "epilogue"
	ScenarioTypePlaceholder ScenarioType = "placeholder"
	ScenarioTypeSide        ScenarioType = "side"
)

// Scenario is the static, authored definition of one scenario.
type Scenario struct {
	ID             string       `json:"id" yaml:"id"`
	Type           ScenarioType `json:"type,omitempty" yaml:"type,omitempty"`
	ScenarioName   string       `json:"scenario_name" yaml:"scenario_name"`
	FullName       string       `json:"full_name" yaml:"full_name"`
	Header         string       `json:"header,omitempty" yaml:"header,omitempty"`
	Icon           string       `json:"icon,omitempty" yaml:"icon,omitempty"`
	MainScenarioID string       `json:"main_scenario_id,omitempty" yaml:"main_scenario_id,omitempty"`
	XPCost         int          `json:"xp_cost,omitempty" yaml:"xp_cost,omitempty"`

	// Setup is the ordered list of step ids forming the scenario script.
	Setup []string `json:"setup" yaml:"setup"`
	// Steps holds the step definitions referenced by Setup and by branches.
	Steps []Step `json:"steps" yaml:"steps"`

	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Step returns the step definition with the given id.
func (s *Scenario) Step(id string) (Step, bool) {
	for _, step := range s.Steps {
		if step.StepID() == id {
			return step, true
		}
	}
	return nil, false
}

// IsSide reports whether the scenario is attached to a parent scenario.
func (s *Scenario) IsSide() bool {
	return s.MainScenarioID != "" || s.Type == ScenarioTypeSide
}

// Rule is a campaign or scenario rule surfaced alongside a played scenario.
type Rule struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Question is one FAQ entry.
type Question struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// CampaignCard describes a story card referenced by the campaign log.
type CampaignCard struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Gender      string `json:"gender,omitempty" yaml:"gender,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Achievement is a campaign-level accomplishment.
type Achievement struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Max   int    `json:"max,omitempty" yaml:"max,omitempty"`
}

// LogSectionType selects how entries of a campaign log section resolve.
type LogSectionType string

const (
	LogSectionText              LogSectionType = ""
	LogSectionCount             LogSectionType = "count"
	LogSectionSupplies          LogSectionType = "supplies"
	LogSectionInvestigatorCount LogSectionType = "investigator_count"
	LogSectionPartner           LogSectionType = "partner"
)

// Partner is a named ally tracked by a partner log section.
type Partner struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// LogSectionDef declares one section of the campaign log schema.
type LogSectionDef struct {
	ID       string         `json:"id" yaml:"id"`
	Title    string         `json:"title" yaml:"title"`
	Type     LogSectionType `json:"type,omitempty" yaml:"type,omitempty"`
	Partners []Partner      `json:"partners,omitempty" yaml:"partners,omitempty"`
}

// CampaignData is the campaign-wide part of the authored content.
type CampaignData struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Version int    `json:"version" yaml:"version"`

	// Scenarios is the authored play order.
	Scenarios []string `json:"scenarios" yaml:"scenarios"`
	Setup     []string `json:"setup" yaml:"setup"`
	Steps     []Step   `json:"steps" yaml:"steps"`

	SideScenarioSteps      []Step   `json:"side_scenario_steps,omitempty" yaml:"side_scenario_steps,omitempty"`
	ScenarioSetup          []string `json:"scenario_setup,omitempty" yaml:"scenario_setup,omitempty"`
	SideScenarioResolution []string `json:"side_scenario_resolution,omitempty" yaml:"side_scenario_resolution,omitempty"`
	Tarot                  []string `json:"tarot,omitempty" yaml:"tarot,omitempty"`
	NoSideScenarioXP       bool     `json:"no_side_scenario_xp,omitempty" yaml:"no_side_scenario_xp,omitempty"`

	Rules        []Rule          `json:"rules,omitempty" yaml:"rules,omitempty"`
	CampaignLog  []LogSectionDef `json:"campaign_log" yaml:"campaign_log"`
	Cards        []CampaignCard  `json:"cards,omitempty" yaml:"cards,omitempty"`
	Achievements []Achievement   `json:"achievements,omitempty" yaml:"achievements,omitempty"`
}

// FullCampaign bundles campaign data with its scenario definitions.
type FullCampaign struct {
	Campaign  CampaignData `json:"campaign" yaml:"campaign"`
	Scenarios []Scenario   `json:"scenarios" yaml:"scenarios"`
}

// Supply is a purchasable supply referenced by a supplies log section.
type Supply struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Cost        int    `json:"cost,omitempty" yaml:"cost,omitempty"`
	Multiple    bool   `json:"multiple,omitempty" yaml:"multiple,omitempty"`
}

// LogTextEntry is the display text of one log entry.
// Text is empty when the entry is gendered.
type LogTextEntry struct {
	ID            string `json:"id" yaml:"id"`
	Text          string `json:"text,omitempty" yaml:"text,omitempty"`
	MasculineText string `json:"masculine_text,omitempty" yaml:"masculine_text,omitempty"`
	FeminineText  string `json:"feminine_text,omitempty" yaml:"feminine_text,omitempty"`
	NonbinaryText string `json:"nonbinary_text,omitempty" yaml:"nonbinary_text,omitempty"`
}

// LogTextSection groups the entry texts of one log section.
type LogTextSection struct {
	Section string         `json:"section" yaml:"section"`
	Entries []LogTextEntry `json:"entries" yaml:"entries"`
}

// LogText is the display text of the campaign log.
type LogText struct {
	CampaignID string           `json:"campaign_id" yaml:"campaign_id"`
	Sections   []LogTextSection `json:"sections" yaml:"sections"`
	Supplies   []Supply         `json:"supplies,omitempty" yaml:"supplies,omitempty"`
}

// CardErrata is a correction to one or more encounter cards.
type CardErrata struct {
	Code []string `json:"code" yaml:"code"`
	Text string   `json:"text" yaml:"text"`
}

// EncounterErrata groups card errata by encounter set.
type EncounterErrata struct {
	EncounterCode string       `json:"encounter_code" yaml:"encounter_code"`
	Cards         []CardErrata `json:"cards" yaml:"cards"`
}

// ScenarioFAQ holds the FAQ of one scenario, optionally restricted to a campaign.
type ScenarioFAQ struct {
	ScenarioCode string     `json:"scenario_code" yaml:"scenario_code"`
	CampaignCode string     `json:"campaign_code,omitempty" yaml:"campaign_code,omitempty"`
	Questions    []Question `json:"questions" yaml:"questions"`
}

// CampaignFAQ holds FAQ shared by one or more campaign cycles.
type CampaignFAQ struct {
	Cycles    []string   `json:"cycles" yaml:"cycles"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Errata is the published errata and FAQ for all campaigns.
type Errata struct {
	Cards       []EncounterErrata `json:"cards,omitempty" yaml:"cards,omitempty"`
	FAQ         []ScenarioFAQ     `json:"faq,omitempty" yaml:"faq,omitempty"`
	CampaignFAQ []CampaignFAQ     `json:"campaign_faq,omitempty" yaml:"campaign_faq,omitempty"`
}

// Content is everything a guide needs to interpret one campaign.
type Content struct {
	Campaign      FullCampaign      `json:"campaign" yaml:"campaign"`
	Log           LogText           `json:"log" yaml:"log"`
	SideCampaign  FullCampaign      `json:"side_campaign" yaml:"side_campaign"`
	Errata        Errata            `json:"errata" yaml:"errata"`
	EncounterSets map[string]string `json:"encounter_sets,omitempty" yaml:"encounter_sets,omitempty"`
}
