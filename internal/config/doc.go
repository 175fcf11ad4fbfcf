// Package config loads the rhythm: the user-level settings that tell liz
// where its files live and how to pace and display shortcuts.
//
// Resolution order, lowest to highest precedence:
//
//  1. Built-in defaults rooted at the data directory
//  2. rhythm.toml in the data directory (or the file passed with --config)
//  3. LIZ_* environment variables (LIZ_INTERVAL_MS, LIZ_KEYMAP_PATH, ...)
//
// The merged result is checked against an embedded CUE schema before use.
package config
