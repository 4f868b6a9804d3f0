// Package journal records subscription lifecycles in SQLite.
//
// Each registry subscription becomes one row keyed by session, kind and
// handle. The row is written on registration, counts the events delivered
// while it is live, and is closed with the removal reason. The journal is fed
// through registry.Hooks (see Hooks) and is queried by the log tools.
package journal
