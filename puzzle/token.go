package puzzle

import "strings"

// Token is one recognised spoken word.
type Token uint8

const (
	TokenSugar Token = iota + 1
	TokenMentos
	TokenBridge
)

// Tokens lists every token in recognition order.
var Tokens = []Token{TokenSugar, TokenMentos, TokenBridge}

func (t Token) String() string {
	switch t {
	case TokenSugar:
		return "sugar"
	case TokenMentos:
		return "mentos"
	case TokenBridge:
		return "bridge"
	default:
		return "unknown"
	}
}

// ParseToken maps a word to a Token. Unknown words are not an error, the
// caller just ignores them.
func ParseToken(word string) (Token, bool) {
	for _, t := range Tokens {
		if strings.EqualFold(strings.TrimSpace(word), t.String()) {
			return t, true
		}
	}
	return 0, false
}
