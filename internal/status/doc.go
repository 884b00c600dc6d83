// Package status fetches manager status snapshots and annotates them for
// display.
//
// Annotation is a pure function from the raw snapshot to per-process and
// per-station health views; nothing derived here is ever sent back to the
// manager. The Poller drives annotation on a chained cadence: the next fetch
// is armed only after the previous cycle completes, and the loop stops when
// its context is cancelled.
package status
