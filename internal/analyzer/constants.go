package analyzer

// maxLineBytes caps how much of a single line is kept. Console lines are
// short; anything past the cap is discarded and the line is skipped with a
// warning instead of aborting the run.
const maxLineBytes = 1024 * 1024
