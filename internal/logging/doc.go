// Package logging builds the slog logger used across themesync: a pretty
// console handler for interactive runs and a JSON handler for log scraping,
// teeing output to stdout and a file under the configured log directory.
package logging
