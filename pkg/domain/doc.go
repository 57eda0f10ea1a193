/*
Package domain contains the core models of the campaign guide interpreter.

It defines the static campaign content (scenarios, steps, inputs, effects, log
schema), the scenario identifier codec, the persisted decision records, and
the processed trace that a chain-walk produces. This package is kept pure and
free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - ScenarioID: a scenario identifier, optionally carrying a replay attempt ("id#2").
  - Scenario: one authored unit of campaign content with an ordered step script.
  - Step, Input, Effect: closed sum types describing the script.
  - Entry: one persisted player decision, namespaced by encoded scenario id.
  - CampaignLog: the immutable accumulated state threaded through a walk.
  - ProcessedScenario / ProcessedCampaign: the ordered execution trace.
*/
package domain
