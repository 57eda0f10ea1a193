/*
Package observability provides tools for monitoring campaign walks.

Metrics exposes Prometheus collectors fed by domain.WalkHooks, LogHooks
writes the same events to a structured logger, and Combine fans one walk
out to several hook sets.
*/
package observability
