// Package alarm implements one-shot alarms keyed by id.
//
// Setting an alarm with an id that is already pending replaces it; there is
// no stacking. When an alarm fires it is removed and the OnFire callback
// receives its id and payload outside the manager's lock, so the callback may
// set the next alarm.
//
// Alarms are not persisted. Close cancels everything that is pending.
package alarm
