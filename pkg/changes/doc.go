// Package changes turns the text returned by the editor back into a change
// set.
//
// Grammar, one entry per non-blank line:
//
//	<index><whitespace><payload>
//
// The index refers to the line's position in the rendered path index. The
// payload is either one of the deletion tokens (matched case-insensitively)
// or a destination path, absolute or relative to the working directory.
// Indices missing from the text mean "leave unchanged"; nothing is ever
// deleted because a line went missing.
//
// Malformed input is rejected with an errors.ErrParse error naming the
// offending line. The parser never guesses.
package changes
