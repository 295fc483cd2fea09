// Package docket declares the messaging surface of an application: its API
// metadata, the servers it connects to and the messages it produces and
// consumes. A Docket is immutable once built.
package docket

import (
	"errors"
	"maps"
	"slices"
	"sort"
)

const DefaultContentType = "application/json"

var (
	ErrMissingInfo        = errors.New("docket: info is required")
	ErrMissingChannelName = errors.New("docket: channel name is required")
	ErrUnknownTrait       = errors.New("docket: unknown trait")
)

type Docket struct {
	id          string
	contentType string
	info        Info
	tags        Tags
	servers     map[string]Server
	producers   []ProducerData
	consumers   []ConsumerData
	schemas     map[string]Schema
}

// ID is the optional application identifier.
func (d *Docket) ID() string { return d.id }

func (d *Docket) DefaultContentType() string { return d.contentType }

func (d *Docket) Info() Info { return d.info.clone() }

// Tags returns a copy of the document level tags.
func (d *Docket) Tags() Tags { return slices.Clone(d.tags) }

// Servers returns a copy of the server declarations keyed by identifier.
func (d *Docket) Servers() map[string]Server {
	return maps.Clone(d.servers)
}

// Producers returns a copy of the producers in declaration order.
func (d *Docket) Producers() []ProducerData {
	return cloneProducers(d.producers)
}

// Consumers returns a copy of the consumers in declaration order.
func (d *Docket) Consumers() []ConsumerData {
	return cloneConsumers(d.consumers)
}

// Schemas returns a copy of the named schema declarations.
func (d *Docket) Schemas() map[string]Schema {
	if d.schemas == nil {
		return nil
	}
	out := make(map[string]Schema, len(d.schemas))
	for name, s := range d.schemas {
		out[name] = s.clone()
	}
	return out
}

// SchemaNames returns the declared schema names in sorted order.
func (d *Docket) SchemaNames() []string {
	names := make([]string, 0, len(d.schemas))
	for name := range d.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
