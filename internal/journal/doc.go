// Package journal records shortcut executions in SQLite.
//
// Every execute request that reaches the injector produces one row, whether
// playback succeeded or failed. Rows carry a monotonic sequence number assigned
// by the dispatcher, so ordering never depends on wall-clock time.
//
// The journal is an audit trail only. Hit counters live in the store file and
// are never rebuilt from here.
package journal
