/*
Package logbook provides reference implementations of the collaborators a
campaign walk consumes: an immutable campaign log (Log), the factory that
seeds it (Factory), and a single-scenario step executor (Executor).

The interpreter in internal/runtime depends only on the ports interfaces;
this package exists so the CLI and adapters can run complete campaigns.
*/
package logbook
