/*
Package session serializes access to persisted campaign decisions.

A campaign's decision snapshot is read, modified and written back as one
unit. The Manager guards each campaign id with a local reference-counted
mutex and, when configured, a distributed lock, so that concurrent
requests recording decisions for the same campaign never lose updates.
*/
package session
