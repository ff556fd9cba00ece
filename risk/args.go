package risk

import "strings"

// Recognized request keys.
const (
	KeyCapital = "capital"
	KeyRisk    = "risk"
	KeySL      = "sl"
	KeyEntry   = "entry"
	KeyTP      = "tp"
	KeySide    = "side"
	KeyLev     = "lev"
	KeyFee     = "fee"
)

// ParseArgs turns command tokens into a key -> value map. Both
// "entry=3600 sl=3564,58" and "entry 3600 sl 3564,58" are accepted and may be
// mixed. Keys are lower-cased. A trailing key with no value is dropped.
// Unknown keys are kept; callers ignore what they don't read.
func ParseArgs(tokens []string) map[string]string {
	out := make(map[string]string, len(tokens))

	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if k, v, ok := strings.Cut(tok, "="); ok {
			out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
			i++
			continue
		}
		if i+1 >= len(tokens) {
			break
		}
		out[strings.ToLower(strings.TrimSpace(tok))] = strings.TrimSpace(tokens[i+1])
		i += 2
	}

	return out
}
