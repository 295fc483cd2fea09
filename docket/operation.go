package docket

import (
	"reflect"
	"slices"

	"github.com/masnyjimmy/asyncdocket/bindings"
)

// Payload is the message carried on a channel. It is declared either from a
// Go type, which is introspected, or from a Schema.
type Payload struct {
	// Name of the message. Defaults to the type name or the referenced
	// component.
	Name   string
	Type   reflect.Type
	Schema Schema
}

// PayloadFor declares a payload from the Go type T.
func PayloadFor[T any]() Payload {
	return Payload{Type: reflect.TypeFor[T]()}
}

// PayloadOf declares a payload from the dynamic type of v.
func PayloadOf(v any) Payload {
	return Payload{Type: reflect.TypeOf(v)}
}

// PayloadSchema declares a payload from a schema.
func PayloadSchema(schema Schema) Payload {
	return Payload{Schema: schema}
}

// Named overrides the message name.
func (p Payload) Named(name string) Payload {
	p.Name = name
	return p
}

func (p Payload) IsZero() bool {
	return p.Type == nil && p.Schema.IsZero()
}

// OperationData is the shape shared by producers and consumers: a single
// message flowing through a named channel.
type OperationData struct {
	ChannelName string
	Description string
	// OperationID overrides the generated operation identifier.
	OperationID string
	Payload     Payload
	Tags        Tags

	Bindings        bindings.Bindings
	MessageBindings bindings.Bindings
	ChannelBindings bindings.Bindings
}

// ProducerData describes a message the application sends.
type ProducerData OperationData

// ConsumerData describes a message the application receives.
type ConsumerData OperationData

func (o OperationData) clone() OperationData {
	o.Payload.Schema = o.Payload.Schema.clone()
	o.Tags = slices.Clone(o.Tags)
	o.Bindings = o.Bindings.Clone()
	o.MessageBindings = o.MessageBindings.Clone()
	o.ChannelBindings = o.ChannelBindings.Clone()
	return o
}

func (o OperationData) validate() error {
	if o.ChannelName == "" {
		return ErrMissingChannelName
	}
	for _, b := range []bindings.Bindings{o.Bindings, o.MessageBindings, o.ChannelBindings} {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func cloneProducers(in []ProducerData) []ProducerData {
	out := slices.Clone(in)
	for i := range out {
		out[i] = ProducerData(OperationData(out[i]).clone())
	}
	return out
}

func cloneConsumers(in []ConsumerData) []ConsumerData {
	out := slices.Clone(in)
	for i := range out {
		out[i] = ConsumerData(OperationData(out[i]).clone())
	}
	return out
}
