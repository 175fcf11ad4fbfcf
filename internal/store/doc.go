// Package store owns the collection of shortcuts.
//
// The store keeps two disjoint partitions:
//   - Active: shortcuts offered to the user and eligible for execution
//   - Deleted: an archive of removed shortcuts and pre-update snapshots
//
// # Invariants
//
// Within Active no two shortcuts share an ID or a content key (see
// shortcut.Key). AddAll with dedupe enabled restores this after every append,
// keeping first occurrences. Deleted may hold several snapshots of one ID.
//
// # Ranking
//
// Rank orders Active by application ascending and then, with a second stable
// sort, by hit number descending. Because the second sort runs last, usage
// frequency dominates and the application name only breaks ties.
//
// # Persistence
//
// The store file is a JSON object {"deleted": [...], "data": [...]}. User
// sheets are flat JSON or YAML arrays of shortcut records, loaded from one
// file or every sheet file in a directory.
//
// Store is not safe for concurrent use. The engine owns the single instance
// and serializes every access.
package store
