// Command themesync downloads movie theme music from a shared cloud drive
// folder into a Plex movie library and audits the result.
package main
