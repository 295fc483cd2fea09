package compilation

import (
	"encoding/json"
	"slices"

	"github.com/masnyjimmy/asyncdocket/bindings"
)

type Message struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	ContentType string            `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Payload     *SchemaOrRef      `json:"payload,omitempty" yaml:"payload,omitempty"`
	Bindings    bindings.Bindings `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// Messages are the messages of an operation. A single message is written
// as is, several as oneOf.
type Messages []Message

// Names returns the message names in order.
func (m Messages) Names() []string {
	out := make([]string, len(m))
	for i, msg := range m {
		out[i] = msg.Name
	}
	return out
}

// union appends the messages of next, replacing those with the same name.
// Message bindings of replaced messages are unioned.
func (m Messages) union(next Messages) Messages {
	out := slices.Clone(m)
	for _, msg := range next {
		idx := slices.IndexFunc(out, func(existing Message) bool {
			return existing.Name == msg.Name
		})
		if idx == -1 {
			out = append(out, msg)
			continue
		}
		msg.Bindings = bindings.Merge(out[idx].Bindings, msg.Bindings)
		out[idx] = msg
	}
	return out
}

func (m Messages) document() any {
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	default:
		return map[string]any{"oneOf": []Message(m)}
	}
}

func (m Messages) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.document())
}

func (m Messages) MarshalYAML() (any, error) {
	return m.document(), nil
}
