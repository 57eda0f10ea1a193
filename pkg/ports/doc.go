/*
Package ports defines the driven ports (interfaces) of the campaign guide.

These interfaces decouple the chain-walk interpreter from the collaborators it
consumes: the persisted decision store, the single-scenario step executor, the
campaign log factory, the raw content source, and snapshot persistence.

# Key Interfaces

  - CampaignState: the decision store, namespaced by encoded scenario id.
  - ScenarioState: the same store with the scenario id curried away.
  - StepExecutor: turns a scenario definition and a running log into steps.
  - LogFactory: seeds the empty campaign log of a walk.
  - ContentSource: lists and reads raw campaign content documents.
  - Store: persists decision snapshots per campaign.
  - DistributedLocker: serializes snapshot writes across replicas.
*/
package ports
