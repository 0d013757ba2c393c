package tracer

import "strings"

// Identity is what label providers know about a participant
type Identity struct {
	UserID      string
	DisplayName string
}

// LabelProvider returns a human-readable trust or role label for a user.
// An empty string means the provider has nothing to say.
type LabelProvider interface {
	Label(id Identity) string
}

// LabelFunc adapts a function to LabelProvider
type LabelFunc func(id Identity) string

func (f LabelFunc) Label(id Identity) string { return f(id) }

// IsMarkedPeer reports whether any provider's label contains substring,
// ignoring case. No providers, or an empty substring, means not marked.
func IsMarkedPeer(id Identity, providers []LabelProvider, substring string) bool {
	if substring == "" {
		return false
	}
	needle := strings.ToLower(substring)
	for _, p := range providers {
		if p == nil {
			continue
		}
		if strings.Contains(strings.ToLower(p.Label(id)), needle) {
			return true
		}
	}
	return false
}
