// Package shortcut defines the Shortcut entity shared by every other package.
//
// A Shortcut is a plain value: an immutable 128-bit ID plus the user-edited
// notation string and free-text metadata. The package performs no validation;
// notation correctness is the compiler's concern and collection invariants
// (unique IDs, unique content) are enforced by the store.
//
// Key design constraints:
//   - ID serializes as its canonical UUID text form, never as a raw integer
//   - HitNumber is never negative; only the store increments it
//   - Missing JSON fields fall back to the defaults in Default()
package shortcut
