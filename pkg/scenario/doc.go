/*
Package scenario provides the per-scenario view of a campaign decision store.

A State binds one encoded scenario id to a ports.CampaignState so that step
executors can read and record decisions without repeating the namespace on
every call. It holds no data of its own; every operation forwards to the
underlying campaign state.
*/
package scenario
