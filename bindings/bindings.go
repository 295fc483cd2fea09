// Package bindings holds the protocol specific metadata that can be attached
// to AsyncAPI channels, operations and messages.
package bindings

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// Well known protocol keys.
const (
	Kafka      = "kafka"
	AMQP       = "amqp"
	MQTT       = "mqtt"
	WebSockets = "ws"
	HTTP       = "http"
)

// Binding is protocol specific metadata. The map key a binding is stored
// under is expected to match Protocol.
type Binding interface {
	Protocol() string
}

// Merger is implemented by bindings that know how to combine two values
// declared for the same protocol. Bindings without it are replaced by the
// value processed last.
type Merger interface {
	Merge(other Binding) Binding
}

// Cloner is implemented by bindings holding maps, slices or pointers, so
// that copies do not share them.
type Cloner interface {
	Clone() Binding
}

// Bindings maps a protocol name to its binding.
type Bindings map[string]Binding

// Clone returns a deep copy of every binding implementing Cloner, nil
// stays nil.
func (b Bindings) Clone() Bindings {
	if b == nil {
		return nil
	}
	out := make(Bindings, len(b))
	for protocol, binding := range b {
		if cloner, ok := binding.(Cloner); ok {
			binding = cloner.Clone()
		}
		out[protocol] = binding
	}
	return out
}

// Protocols returns the protocol keys in sorted order.
func (b Bindings) Protocols() []string {
	out := make([]string, 0, len(b))
	for k := range b {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Merge unions src into dst by protocol key and returns the result as a new
// map. When both sides declare a protocol, a Merger on the dst side combines
// them, otherwise src wins.
func Merge(dst, src Bindings) Bindings {
	if len(dst) == 0 && len(src) == 0 {
		return nil
	}

	out := make(Bindings, len(dst)+len(src))
	maps.Copy(out, dst)

	for protocol, incoming := range src {
		existing, ok := out[protocol]
		if !ok {
			out[protocol] = incoming
			continue
		}
		if merger, ok := existing.(Merger); ok {
			out[protocol] = merger.Merge(incoming)
			continue
		}
		out[protocol] = incoming
	}

	return out
}

// Validate checks that every binding is stored under its own protocol key.
func (b Bindings) Validate() error {
	for _, key := range b.Protocols() {
		binding := b[key]
		if binding == nil {
			return fmt.Errorf("binding %q is nil", key)
		}
		if p := binding.Protocol(); p != key {
			return fmt.Errorf("binding %q declares protocol %q", key, p)
		}
	}
	return nil
}

func union(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := slices.Clone(a)
	for _, v := range b {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func constSchema(value string) map[string]any {
	return map[string]any{
		"type": "string",
		"enum": []string{value},
	}
}
