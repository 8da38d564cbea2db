// Package diff computes word-level differences between two texts.
//
// Both inputs are split into Unicode word-boundary tokens (UAX #29), so words,
// whitespace runs and punctuation each form their own token and the tokens of
// a text concatenate back to it exactly. The token sequences are aligned with
// a sequence matcher and the resulting edit script is folded into an ordered
// list of [Segment] values. Concatenating the [Unchanged] and [Removed]
// segments yields the original text; concatenating [Unchanged] and [Added]
// yields the proposed text.
package diff
