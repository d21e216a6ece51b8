// Package plex implements the media-server collaborator: listing the movie
// library, fetching single items by rating key, and triggering metadata
// refreshes over the Plex HTTP API.
package plex
