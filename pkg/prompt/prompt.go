// Package prompt builds the single outbound message sent to a model: a role's
// fixed instructions followed by the user's text under a stable header.
package prompt

// InputHeader marks where the source text begins. Role instructions may refer
// to "the text below" and rely on this literal.
const InputHeader = "### INPUT TEXT"

const separator = "\n\n" + InputHeader + "\n\n"

// Compose joins instructions and source. The source is appended byte for byte
// with no trimming, escaping or truncation.
func Compose(instructions, source string) string {
	return instructions + separator + source
}
