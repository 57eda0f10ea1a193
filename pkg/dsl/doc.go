/*
Package dsl provides a Go DSL for programmatically constructing campaign content.

It lets tests and tools define campaigns with a fluent builder instead of
authoring JSON or YAML documents. Scenario builders append the steps they
define to the scenario's setup script in call order.

Example usage:

	b := dsl.New("night_of_the_zealot").Name("Night of the Zealot")

	b.Scenario("the_gathering").
		Name("The Gathering").
		Do("intro", domain.CampaignLogEffect{Section: "campaign_notes", ID: "house_standing"}).
		Play(
			domain.ResolutionBranch{ID: "r1", Steps: []string{"burned"}},
			domain.ResolutionBranch{ID: "r2"},
		).
		Then(domain.UpgradeDecksStepID)

	b.Scenario("the_midnight_masks").Name("The Midnight Masks").Play()

	content, err := b.Build()
*/
package dsl
