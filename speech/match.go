package speech

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/milk9111/jamfest/puzzle"
)

// Match finds every puzzle keyword in a transcript message. Matching is by
// substring on case-folded text, so raw recogniser JSON works as well as
// plain sentences. One message can yield several tokens; they come back in
// the order sugar, mentos, bridge.
func Match(text string) []puzzle.Token {
	if text == "" {
		return nil
	}
	folded := cases.Fold().String(text)
	var out []puzzle.Token
	for _, tok := range puzzle.Tokens {
		if strings.Contains(folded, tok.String()) {
			out = append(out, tok)
		}
	}
	return out
}
