package robotk

// MaxValueLen is the longest directive value we will accept.
const MaxValueLen = 2048

// Rule is a single allow or disallow directive bound to a path prefix.
// Immutable once created by the parser.
type Rule struct {
	Path  string
	Allow bool
}

// NewRule for a path prefix
func NewRule(path string, allow bool) *Rule {
	return &Rule{Path: path, Allow: allow}
}

// SafeValue rejects directive values that are empty, overlong or
// carry control characters. Unsafe values are dropped by the parser,
// never surfaced as errors.
func SafeValue(v string) bool {
	if v == "" || len(v) > MaxValueLen {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < 0x20 || v[i] == 0x7f {
			return false
		}
	}
	return true
}
