// Package runstate persists the remaining worklist of an interrupted sync
// run. The store holds a single global slot: its presence decides resume
// versus fresh start, it is rewritten atomically whenever a rate limit
// interrupts processing, and it is deleted on clean completion.
package runstate
