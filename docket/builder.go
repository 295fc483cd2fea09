package docket

import (
	"fmt"
	"maps"
	"slices"
)

// Builder accumulates a Docket. The zero value is not usable, use
// NewBuilder.
type Builder struct {
	id          string
	contentType string
	info        *Info
	tags        Tags
	servers     map[string]Server
	producers   []ProducerData
	consumers   []ConsumerData
	schemas     map[string]Schema
}

func NewBuilder() *Builder {
	return &Builder{
		servers: make(map[string]Server),
		schemas: make(map[string]Schema),
	}
}

func (b *Builder) ID(id string) *Builder {
	b.id = id
	return b
}

func (b *Builder) DefaultContentType(contentType string) *Builder {
	b.contentType = contentType
	return b
}

func (b *Builder) Info(info Info) *Builder {
	info = info.clone()
	b.info = &info
	return b
}

// Tag adds document level tags. Tags sharing a name are merged.
func (b *Builder) Tag(tags ...Tag) *Builder {
	b.tags = b.tags.Union(tags)
	return b
}

// Server adds a server. A later call with the same name replaces it.
func (b *Builder) Server(name string, server Server) *Builder {
	b.servers[name] = server
	return b
}

func (b *Builder) Servers(servers map[string]Server) *Builder {
	maps.Copy(b.servers, servers)
	return b
}

func (b *Builder) Producer(producer ProducerData) *Builder {
	b.producers = append(b.producers, ProducerData(OperationData(producer).clone()))
	return b
}

func (b *Builder) Producers(producers ...ProducerData) *Builder {
	for _, p := range producers {
		b.Producer(p)
	}
	return b
}

func (b *Builder) Consumer(consumer ConsumerData) *Builder {
	b.consumers = append(b.consumers, ConsumerData(OperationData(consumer).clone()))
	return b
}

func (b *Builder) Consumers(consumers ...ConsumerData) *Builder {
	for _, c := range consumers {
		b.Consumer(c)
	}
	return b
}

// Schema declares a named component schema.
func (b *Builder) Schema(name string, schema Schema) *Builder {
	b.schemas[name] = schema.clone()
	return b
}

// Build validates the accumulated state and returns an immutable snapshot.
// Further calls on the builder do not affect returned Dockets.
func (b *Builder) Build() (*Docket, error) {
	if b.info == nil {
		return nil, ErrMissingInfo
	}
	if b.info.Title == "" {
		return nil, fmt.Errorf("%w: title is empty", ErrMissingInfo)
	}
	if b.info.Version == "" {
		return nil, fmt.Errorf("%w: version is empty", ErrMissingInfo)
	}

	for i, p := range b.producers {
		if err := OperationData(p).validate(); err != nil {
			return nil, fmt.Errorf("producer %d: %w", i, err)
		}
	}
	for i, c := range b.consumers {
		if err := OperationData(c).validate(); err != nil {
			return nil, fmt.Errorf("consumer %d: %w", i, err)
		}
	}

	contentType := b.contentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	d := &Docket{
		id:          b.id,
		contentType: contentType,
		info:        b.info.clone(),
		tags:        slices.Clone(b.tags),
		servers:     maps.Clone(b.servers),
		producers:   cloneProducers(b.producers),
		consumers:   cloneConsumers(b.consumers),
	}
	if len(b.schemas) > 0 {
		d.schemas = make(map[string]Schema, len(b.schemas))
		for name, s := range b.schemas {
			d.schemas[name] = s.clone()
		}
	}
	return d, nil
}
