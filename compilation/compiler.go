package compilation

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/masnyjimmy/asyncdocket/docket"
)

type CompileContext struct {
	in  *docket.Docket
	out *Document

	channels *ChannelsService
	schemas  *SchemasService
}

func newCompileContext(input *docket.Docket, output *Document, scanners []ChannelScanner) *CompileContext {
	return &CompileContext{
		in:       input,
		out:      output,
		channels: NewChannelsService(scanners...),
		schemas:  NewSchemasService(),
	}
}

func (c *CompileContext) CompileInfo() {
	c.out.ID = c.in.ID()
	c.out.Info = c.in.Info()
	c.out.DefaultContentType = c.in.DefaultContentType()
}

func (c *CompileContext) CompileServers() {
	c.out.Servers = c.in.Servers()
}

func (c *CompileContext) CompileTags() {
	c.out.Tags = c.in.Tags()
}

// ParseSchemas registers the schemas declared on the docket, whether a
// payload uses them or not.
func (c *CompileContext) ParseSchemas() error {
	declared := c.in.Schemas()
	for _, name := range c.in.SchemaNames() {
		schema, err := c.schemas.Parse(declared[name])
		if err != nil {
			return fmt.Errorf("schema %q: %w", name, err)
		}
		c.schemas.Register(name, schema)
	}
	return nil
}

func (c *CompileContext) ParseChannels() error {
	channels, err := c.channels.Channels(c.in, c.schemas)
	if err != nil {
		return err
	}
	c.out.Channels = channels
	return nil
}

// ResolveRefs fails on a reference to a component that was never declared
// nor generated from a Go type.
func (c *CompileContext) ResolveRefs() error {
	defs := c.schemas.Definitions()
	for _, name := range c.schemas.Names() {
		if err := c.schemas.Resolve(defs[name]); err != nil {
			return fmt.Errorf("schema %q: %w", name, err)
		}
	}

	for _, channel := range ChannelNames(c.out.Channels) {
		ch := c.out.Channels[channel]
		for _, op := range []*Operation{ch.Subscribe, ch.Publish} {
			if op == nil {
				continue
			}
			for _, msg := range op.Message {
				if msg.Payload == nil {
					continue
				}
				if err := c.schemas.Resolve(*msg.Payload); err != nil {
					return fmt.Errorf("channel %q message %q: %w", channel, msg.Name, err)
				}
			}
		}
	}
	return nil
}

func (c *CompileContext) CompileComponents() {
	if defs := c.schemas.Definitions(); defs != nil {
		c.out.Components = &Components{Schemas: defs}
	}
}

func (c *CompileContext) Parse() error {
	c.CompileInfo()

	c.CompileServers()

	c.CompileTags()

	if err := c.ParseSchemas(); err != nil {
		return err
	}

	if err := c.ParseChannels(); err != nil {
		return err
	}

	if err := c.ResolveRefs(); err != nil {
		return err
	}

	c.CompileComponents()

	return nil
}

// Compile assembles the AsyncAPI document of a docket. Scanners default to
// DefaultScanners.
func Compile(in *docket.Docket, scanners ...ChannelScanner) (*Document, error) {
	if in == nil {
		return nil, docket.ErrMissingInfo
	}
	if len(scanners) == 0 {
		scanners = DefaultScanners()
	}

	out := &Document{
		AsyncAPI: AsyncAPIVersion,
	}

	ctx := newCompileContext(in, out, scanners)
	if err := ctx.Parse(); err != nil {
		return nil, err
	}

	return out, nil
}

func CompileToJSON(in *docket.Docket) ([]byte, error) {
	out, err := Compile(in)
	if err != nil {
		return nil, err
	}
	return MarshalJSON(out)
}

func CompileToYAML(in *docket.Docket) ([]byte, error) {
	out, err := Compile(in)
	if err != nil {
		return nil, err
	}
	return MarshalYAML(out)
}

func MarshalJSON(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func MarshalYAML(doc *Document) ([]byte, error) {
	return yaml.MarshalWithOptions(doc, yaml.Indent(2), yaml.IndentSequence(true))
}
