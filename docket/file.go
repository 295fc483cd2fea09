package docket

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/masnyjimmy/asyncdocket/bindings"
)

// File is the YAML representation of a docket.
type File struct {
	ID                 string               `yaml:"id,omitempty"`
	DefaultContentType string               `yaml:"defaultContentType,omitempty"`
	Info               *Info                `yaml:"info"`
	Tags               Tags                 `yaml:"tags,omitempty"`
	Traits             map[string]TraitFile `yaml:"traits,omitempty"`
	Servers            map[string]Server    `yaml:"servers,omitempty"`
	Schemas            map[string]Schema    `yaml:"schemas,omitempty"`
	Producers          []OperationFile      `yaml:"producers,omitempty"`
	Consumers          []OperationFile      `yaml:"consumers,omitempty"`
}

// BindingsFile holds undecoded binding blocks keyed by protocol.
type BindingsFile struct {
	Bindings        map[string]yaml.RawMessage `yaml:"bindings,omitempty"`
	MessageBindings map[string]yaml.RawMessage `yaml:"messageBindings,omitempty"`
	ChannelBindings map[string]yaml.RawMessage `yaml:"channelBindings,omitempty"`
}

func (f BindingsFile) decode(into *OperationData) error {
	op, err := bindings.DecodeAll(bindings.OperationKind, f.Bindings)
	if err != nil {
		return err
	}
	msg, err := bindings.DecodeAll(bindings.MessageKind, f.MessageBindings)
	if err != nil {
		return err
	}
	ch, err := bindings.DecodeAll(bindings.ChannelKind, f.ChannelBindings)
	if err != nil {
		return err
	}

	into.Bindings = bindings.Merge(into.Bindings, op)
	into.MessageBindings = bindings.Merge(into.MessageBindings, msg)
	into.ChannelBindings = bindings.Merge(into.ChannelBindings, ch)
	return nil
}

// TraitFile is a reusable set of operation fields. Operations list the
// traits they apply; their own fields take precedence.
type TraitFile struct {
	Description  string `yaml:"description,omitempty"`
	Tags         Tags   `yaml:"tags,omitempty"`
	BindingsFile `yaml:",inline"`
}

type OperationFile struct {
	Channel      string   `yaml:"channel"`
	Description  string   `yaml:"description,omitempty"`
	OperationID  string   `yaml:"operationId,omitempty"`
	Message      string   `yaml:"message,omitempty"`
	Traits       []string `yaml:"traits,omitempty"`
	Tags         Tags     `yaml:"tags,omitempty"`
	Payload      *Schema  `yaml:"payload,omitempty"`
	BindingsFile `yaml:",inline"`
}

func (o OperationFile) data(traits map[string]TraitFile) (OperationData, error) {
	out := OperationData{
		ChannelName: o.Channel,
		OperationID: o.OperationID,
	}

	for _, name := range o.Traits {
		trait, ok := traits[name]
		if !ok {
			return OperationData{}, fmt.Errorf("%w: %q", ErrUnknownTrait, name)
		}
		if trait.Description != "" {
			out.Description = trait.Description
		}
		out.Tags = out.Tags.Union(trait.Tags)
		if err := trait.decode(&out); err != nil {
			return OperationData{}, fmt.Errorf("trait %q: %w", name, err)
		}
	}

	if o.Description != "" {
		out.Description = o.Description
	}
	out.Tags = out.Tags.Union(o.Tags)
	if o.Payload != nil {
		out.Payload = PayloadSchema(*o.Payload)
	}
	out.Payload.Name = o.Message

	if err := o.decode(&out); err != nil {
		return OperationData{}, err
	}
	return out, nil
}

// Builder converts the file into a builder, applying traits and decoding
// bindings on the way.
func (f *File) Builder() (*Builder, error) {
	b := NewBuilder().
		ID(f.ID).
		DefaultContentType(f.DefaultContentType).
		Servers(f.Servers).
		Tag(f.Tags...)

	if f.Info != nil {
		b.Info(*f.Info)
	}
	for name, s := range f.Schemas {
		b.Schema(name, s)
	}

	for i, p := range f.Producers {
		data, err := p.data(f.Traits)
		if err != nil {
			return nil, fmt.Errorf("producer %d (%v): %w", i, p.Channel, err)
		}
		b.Producer(ProducerData(data))
	}
	for i, c := range f.Consumers {
		data, err := c.data(f.Traits)
		if err != nil {
			return nil, fmt.Errorf("consumer %d (%v): %w", i, c.Channel, err)
		}
		b.Consumer(ConsumerData(data))
	}
	return b, nil
}

// Parse decodes a YAML docket and builds it.
func Parse(data []byte) (*Docket, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unable to parse docket: %w", err)
	}

	b, err := f.Builder()
	if err != nil {
		return nil, err
	}
	return b.Build()
}
