package settings

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is a persisted setting. Missing or unreadable stored data yields the default.
type Value[T comparable] struct {
	key         string
	description string
	def         T
	v           T
	store       *Store
	listeners   []func(T)
}

// NewValue registers key in s and loads its stored value.
func NewValue[T comparable](s *Store, key string, def T, description string) *Value[T] {
	v := &Value[T]{
		key:         key,
		description: description,
		def:         def,
		v:           def,
		store:       s,
	}
	if s != nil {
		s.register(v)
	}
	return v
}

func (v *Value[T]) Key() string         { return v.key }
func (v *Value[T]) Description() string { return v.description }
func (v *Value[T]) Default() T          { return v.def }
func (v *Value[T]) Get() T              { return v.v }

// Set stores x, persists it and notifies listeners. Setting the current value is a no-op.
func (v *Value[T]) Set(x T) {
	if x == v.v {
		return
	}
	v.v = x
	v.persist()
	for _, fn := range v.listeners {
		fn(x)
	}
}

// OnChanged registers fn to run after every effective Set.
func (v *Value[T]) OnChanged(fn func(T)) {
	v.listeners = append(v.listeners, fn)
}

func (v *Value[T]) persist() {
	data, err := json.Marshal(v.v)
	if err != nil {
		log.Printf("[settings] Warning: could not serialize %s: %v", v.key, err)
		return
	}
	v.store.saveItem(v.key, data)
}

func (v *Value[T]) load() {
	data := v.store.loadItem(v.key)
	if len(data) == 0 {
		return
	}
	var x T
	if err := json.Unmarshal(data, &x); err != nil {
		log.Printf("[settings] Warning: could not parse %s, using default: %v", v.key, err)
		return
	}
	v.v = x
}

func (v *Value[T]) applyOverride(node *yaml.Node) error {
	var x T
	if c, ok := any(&x).(*color.RGBA); ok && node.Kind == yaml.ScalarNode {
		parsed, err := ParseHexColor(node.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", v.key, err)
		}
		*c = parsed
	} else if err := node.Decode(&x); err != nil {
		return fmt.Errorf("%s: %w", v.key, err)
	}
	v.Set(x)
	return nil
}

// ParseHexColor accepts #rrggbb or #rrggbbaa.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(s) == 6 {
		s += "ff"
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

// FormatHexColor is the inverse of ParseHexColor; the alpha byte is omitted when opaque.
func FormatHexColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
