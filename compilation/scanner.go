package compilation

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/masnyjimmy/asyncdocket/docket"
)

const (
	actionSubscribe = "subscribe"
	actionPublish   = "publish"
)

// ScannedChannel is a channel found by a scanner. A scanner may return the
// same name several times, the ChannelsService merges them.
type ScannedChannel struct {
	Name    string
	Channel Channel
}

// ChannelScanner discovers channels in a docket. Payload schemas are
// registered on the given SchemasService.
type ChannelScanner interface {
	Scan(d *docket.Docket, schemas *SchemasService) ([]ScannedChannel, error)
}

// ProducerChannelScanner maps producers to subscribe operations: the
// application sends, clients subscribe.
type ProducerChannelScanner struct{}

func (ProducerChannelScanner) Scan(d *docket.Docket, schemas *SchemasService) ([]ScannedChannel, error) {
	producers := d.Producers()
	out := make([]ScannedChannel, 0, len(producers))

	for _, p := range producers {
		op, err := buildOperation(docket.OperationData(p), actionSubscribe, schemas)
		if err != nil {
			return nil, fmt.Errorf("producer on %q: %w", p.ChannelName, err)
		}
		out = append(out, ScannedChannel{
			Name: p.ChannelName,
			Channel: Channel{
				Subscribe: op,
				Bindings:  p.ChannelBindings,
			},
		})
	}
	return out, nil
}

// ConsumerChannelScanner maps consumers to publish operations: clients
// publish, the application receives.
type ConsumerChannelScanner struct{}

func (ConsumerChannelScanner) Scan(d *docket.Docket, schemas *SchemasService) ([]ScannedChannel, error) {
	consumers := d.Consumers()
	out := make([]ScannedChannel, 0, len(consumers))

	for _, c := range consumers {
		op, err := buildOperation(docket.OperationData(c), actionPublish, schemas)
		if err != nil {
			return nil, fmt.Errorf("consumer on %q: %w", c.ChannelName, err)
		}
		out = append(out, ScannedChannel{
			Name: c.ChannelName,
			Channel: Channel{
				Publish:  op,
				Bindings: c.ChannelBindings,
			},
		})
	}
	return out, nil
}

// DefaultScanners returns the producer and consumer scanners.
func DefaultScanners() []ChannelScanner {
	return []ChannelScanner{
		ProducerChannelScanner{},
		ConsumerChannelScanner{},
	}
}

func buildOperation(data docket.OperationData, action string, schemas *SchemasService) (*Operation, error) {
	msg, err := buildMessage(data, schemas)
	if err != nil {
		return nil, err
	}

	operationID := data.OperationID
	if operationID == "" {
		operationID = strcase.ToLowerCamel(data.ChannelName + "_" + action)
	}

	return &Operation{
		OperationID: operationID,
		Description: data.Description,
		Tags:        data.Tags,
		Bindings:    data.Bindings,
		Message:     Messages{msg},
	}, nil
}

func buildMessage(data docket.OperationData, schemas *SchemasService) (Message, error) {
	var (
		payload *SchemaOrRef
		name    string
	)

	switch p := data.Payload; {
	case p.Type != nil:
		schema, typeName, err := schemas.RegisterType(p.Type)
		if err != nil {
			return Message{}, err
		}
		payload, name = &schema, typeName
	case !p.Schema.IsZero():
		schema, err := schemas.Parse(p.Schema)
		if err != nil {
			return Message{}, fmt.Errorf("invalid payload: %w", err)
		}
		payload = &schema
		name, _ = schema.ComponentName()
	}

	if data.Payload.Name != "" {
		name = data.Payload.Name
	}
	if name == "" {
		name = strcase.ToCamel(data.ChannelName) + "Message"
	}

	return Message{
		Name:     name,
		Title:    name,
		Payload:  payload,
		Bindings: data.MessageBindings,
	}, nil
}
