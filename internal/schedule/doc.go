// Package schedule drives the talk-encoding workflow: browsing rooms and
// talks, composing an encode request from an editable draft, and tracking
// the queue, in-progress jobs, and output status.
//
// A Draft is a structural copy of a cached talk; edits to file selection,
// credits, and trim offsets never touch the cached schedule, and submission
// reduces the draft to exactly the selected files plus the formatted time
// window. The empty-offset formatting ambiguity between dashboard revisions
// is surfaced as an explicit TimePolicy rather than guessed.
package schedule
