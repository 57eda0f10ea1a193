/*
Package campaignguide walks the campaign guides of a cooperative card game:
given the recorded decisions of the players, it replays every scenario script
of a campaign and reports which scenario is playable, which are locked or
skipped, and what the campaign log holds after each of them.

It implements a "Replay Everything, Reuse What Did Not Change" architecture.
Decisions are an append-only log stored per campaign instance, the guide
content is immutable, and each walk recomputes the full execution trace from
both. Scenarios whose inputs are unchanged since the previous walk are reused
instead of executed again.

# Concept

A campaign is an ordered list of scenarios preceded by a synthesized setup
scenario ($campaign_setup). Each scenario is a script of steps: text with
effects, branches on the campaign log and inputs the players answer. A walk
runs the scripts in play order until one stops at an unanswered input
(started), and marks the next scenario as the single playable one.

# Key Features

  - Deterministic Walks: the same decisions always produce the same trace.
  - Hexagonal Architecture: content sources, decision stores and the step
    executor are ports with file, memory and Redis adapters.
  - Side Scenarios: official and custom side scenarios are spliced after the
    scenario they were started from.
  - Single Undo: only the newest played scenario can be undone.

# Usage

Initialize the engine with a directory holding campaign.yaml (and optionally
side.yaml, log.yaml, errata.yaml and encounter_sets.yaml):

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/campaignguide"
		"github.com/aretw0/campaignguide/pkg/domain"
	)

	func main() {
		eng, err := campaignguide.New("./night_of_the_zealot")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		trace, err := eng.Record(ctx, "table-1", campaignguide.Decision{
			Kind:     domain.EntryStartScenario,
			Scenario: domain.CampaignSetupID,
		})
		if err != nil {
			log.Fatal(err)
		}

		for _, s := range trace.Scenarios {
			fmt.Println(s.ID.EncodedScenarioID, s.Status)
		}
	}
*/
package campaignguide
