package bindings

import "slices"

// Delivery modes of an AMQP message.
const (
	AMQPTransient  = 1
	AMQPPersistent = 2
)

// AMQPOperationBinding holds the publish properties of an AMQP 0-9-1
// operation. Merging two of them keeps the last scalar values and unions the
// cc and bcc routing keys.
type AMQPOperationBinding struct {
	Expiration     int      `json:"expiration,omitempty" yaml:"expiration,omitempty"`
	UserID         string   `json:"userId,omitempty" yaml:"userId,omitempty"`
	CC             []string `json:"cc,omitempty" yaml:"cc,omitempty"`
	Priority       int      `json:"priority,omitempty" yaml:"priority,omitempty"`
	DeliveryMode   int      `json:"deliveryMode,omitempty" yaml:"deliveryMode,omitempty"`
	Mandatory      bool     `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	BCC            []string `json:"bcc,omitempty" yaml:"bcc,omitempty"`
	ReplyTo        string   `json:"replyTo,omitempty" yaml:"replyTo,omitempty"`
	Timestamp      bool     `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Ack            bool     `json:"ack,omitempty" yaml:"ack,omitempty"`
	BindingVersion string   `json:"bindingVersion,omitempty" yaml:"bindingVersion,omitempty"`
}

func (AMQPOperationBinding) Protocol() string { return AMQP }

func (b AMQPOperationBinding) Clone() Binding {
	b.CC = slices.Clone(b.CC)
	b.BCC = slices.Clone(b.BCC)
	return b
}

func (b AMQPOperationBinding) Merge(other Binding) Binding {
	next, ok := other.(AMQPOperationBinding)
	if !ok {
		return other
	}
	next.CC = union(b.CC, next.CC)
	next.BCC = union(b.BCC, next.BCC)
	return next
}

// AMQPMessageBinding describes how an AMQP message body is encoded.
type AMQPMessageBinding struct {
	ContentEncoding string `json:"contentEncoding,omitempty" yaml:"contentEncoding,omitempty"`
	MessageType     string `json:"messageType,omitempty" yaml:"messageType,omitempty"`
	BindingVersion  string `json:"bindingVersion,omitempty" yaml:"bindingVersion,omitempty"`
}

func (AMQPMessageBinding) Protocol() string { return AMQP }

// AMQPChannelBinding tells whether a channel is a routing key on an exchange
// or a queue.
type AMQPChannelBinding struct {
	Is             string        `json:"is,omitempty" yaml:"is,omitempty"`
	Exchange       *AMQPExchange `json:"exchange,omitempty" yaml:"exchange,omitempty"`
	Queue          *AMQPQueue    `json:"queue,omitempty" yaml:"queue,omitempty"`
	BindingVersion string        `json:"bindingVersion,omitempty" yaml:"bindingVersion,omitempty"`
}

func (AMQPChannelBinding) Protocol() string { return AMQP }

func (b AMQPChannelBinding) Clone() Binding {
	if b.Exchange != nil {
		exchange := *b.Exchange
		b.Exchange = &exchange
	}
	if b.Queue != nil {
		queue := *b.Queue
		b.Queue = &queue
	}
	return b
}

type AMQPExchange struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Durable    bool   `json:"durable,omitempty" yaml:"durable,omitempty"`
	AutoDelete bool   `json:"autoDelete,omitempty" yaml:"autoDelete,omitempty"`
	VHost      string `json:"vhost,omitempty" yaml:"vhost,omitempty"`
}

type AMQPQueue struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Durable    bool   `json:"durable,omitempty" yaml:"durable,omitempty"`
	Exclusive  bool   `json:"exclusive,omitempty" yaml:"exclusive,omitempty"`
	AutoDelete bool   `json:"autoDelete,omitempty" yaml:"autoDelete,omitempty"`
	VHost      string `json:"vhost,omitempty" yaml:"vhost,omitempty"`
}
