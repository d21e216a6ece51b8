// Package sync implements the resumable theme download run: discovery and
// matching of movie folders, batched downloads with rate-limit persistence,
// and the follow-up library refresh of every downloaded item.
package sync
