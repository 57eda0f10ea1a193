// Package compiler turns raw campaign documents into domain.Content.
//
// A campaign is a set of documents, each YAML or JSON by extension:
//
//	campaign.yaml        campaign data and main scenarios (required)
//	log.yaml             display text of the campaign log
//	side.yaml            the side scenario pool
//	errata.yaml          card errata and FAQ
//	encounter_sets.yaml  encounter set code to name
//
// Steps, inputs and effects are tagged unions selected by their "type" key.
// A step without a type is generic.
package compiler
