package bindings

import (
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
)

// Kind tells where a binding is attached.
type Kind int

const (
	OperationKind Kind = iota
	MessageKind
	ChannelKind
)

func (k Kind) String() string {
	switch k {
	case OperationKind:
		return "operation"
	case MessageKind:
		return "message"
	case ChannelKind:
		return "channel"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DecodeFunc decodes the YAML block of a single binding.
type DecodeFunc func(data []byte) (Binding, error)

var (
	registryMu sync.RWMutex
	registry   = map[Kind]map[string]DecodeFunc{
		OperationKind: {
			Kafka: decodeAs[KafkaOperationBinding](),
			AMQP:  decodeAs[AMQPOperationBinding](),
		},
		MessageKind: {
			Kafka: decodeAs[KafkaMessageBinding](),
			AMQP:  decodeAs[AMQPMessageBinding](),
		},
		ChannelKind: {
			Kafka: decodeAs[KafkaChannelBinding](),
			AMQP:  decodeAs[AMQPChannelBinding](),
		},
	}
)

func decodeAs[T Binding]() DecodeFunc {
	return func(data []byte) (Binding, error) {
		var out T
		if err := yaml.UnmarshalWithOptions(data, &out, yaml.Strict()); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Register installs a decoder for a protocol, replacing any previous one.
func Register(kind Kind, protocol string, fn DecodeFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registry[kind] == nil {
		registry[kind] = map[string]DecodeFunc{}
	}
	registry[kind][protocol] = fn
}

// Decode turns the YAML block of a binding into a typed value. Protocols
// without a registered decoder become Generic bindings.
func Decode(kind Kind, protocol string, data []byte) (Binding, error) {
	registryMu.RLock()
	fn, ok := registry[kind][protocol]
	registryMu.RUnlock()

	if ok {
		binding, err := fn(data)
		if err != nil {
			return nil, fmt.Errorf("invalid %v %v binding: %w", protocol, kind, err)
		}
		return binding, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("invalid %v %v binding: %w", protocol, kind, err)
	}
	return NewGeneric(protocol, fields), nil
}

// DecodeAll decodes every entry of a bindings block.
func DecodeAll(kind Kind, raw map[string]yaml.RawMessage) (Bindings, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make(Bindings, len(raw))
	for protocol, data := range raw {
		binding, err := Decode(kind, protocol, data)
		if err != nil {
			return nil, err
		}
		out[protocol] = binding
	}
	return out, nil
}
