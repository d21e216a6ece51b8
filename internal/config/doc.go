// Package config loads, normalizes, and validates the themesync TOML
// configuration. Load applies repository defaults first, overlays the config
// file when one exists, expands ~ in path fields, and fails fast on missing
// credentials so no run ever starts half-configured.
package config
