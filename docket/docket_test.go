package docket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masnyjimmy/asyncdocket/bindings"
)

type orderEvent struct {
	ID string `json:"id"`
}

func testInfo() Info {
	return Info{Title: "Test", Version: "1.0.0"}
}

func TestBuildRequiresInfo(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
	}{
		{name: "no info", builder: NewBuilder()},
		{name: "empty title", builder: NewBuilder().Info(Info{Version: "1.0.0"})},
		{name: "empty version", builder: NewBuilder().Info(Info{Title: "Test"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.builder.Build()
			require.ErrorIs(t, err, ErrMissingInfo)
			assert.Nil(t, d)
		})
	}
}

func TestBuildRequiresChannelName(t *testing.T) {
	_, err := NewBuilder().
		Info(testInfo()).
		Producer(ProducerData{Payload: PayloadFor[orderEvent]()}).
		Build()
	require.ErrorIs(t, err, ErrMissingChannelName)
	assert.Contains(t, err.Error(), "producer 0")

	_, err = NewBuilder().
		Info(testInfo()).
		Consumer(ConsumerData{}).
		Build()
	require.ErrorIs(t, err, ErrMissingChannelName)
}

func TestBuildRejectsMisplacedBinding(t *testing.T) {
	_, err := NewBuilder().
		Info(testInfo()).
		Producer(ProducerData{
			ChannelName: "topic",
			Bindings:    bindings.Bindings{bindings.AMQP: bindings.KafkaOperationBinding{}},
		}).
		Build()
	require.Error(t, err)
}

func TestBuild(t *testing.T) {
	producer := ProducerData{
		ChannelName: "producer-topic",
		Payload:     PayloadFor[string](),
		Bindings:    bindings.Bindings{bindings.Kafka: bindings.KafkaOperationBinding{}},
	}

	d, err := NewBuilder().
		Info(testInfo()).
		Server("kafka", KafkaServer("kafka:9092")).
		Producer(producer).
		Schema("Order", Object(Prop("id", Expr("string")))).
		Build()
	require.NoError(t, err)

	assert.Equal(t, testInfo(), d.Info())
	assert.Equal(t, map[string]Server{"kafka": {URL: "kafka:9092", Protocol: "kafka"}}, d.Servers())
	require.Len(t, d.Producers(), 1)
	assert.Equal(t, "producer-topic", d.Producers()[0].ChannelName)
	assert.Empty(t, d.Consumers())
	assert.Equal(t, DefaultContentType, d.DefaultContentType())
	assert.Equal(t, []string{"Order"}, d.SchemaNames())
}

func TestServerLastWriteWins(t *testing.T) {
	d, err := NewBuilder().
		Info(testInfo()).
		Server("broker", KafkaServer("a:9092")).
		Server("broker", KafkaServer("b:9092")).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "b:9092", d.Servers()["broker"].URL)
}

func TestDocketIsImmutable(t *testing.T) {
	b := NewBuilder().
		Info(Info{Title: "Test", Version: "1.0.0", Contact: &Contact{Name: "ops"}}).
		Server("kafka", KafkaServer("kafka:9092")).
		Producer(ProducerData{
			ChannelName: "topic",
			Bindings:    bindings.Bindings{bindings.Kafka: bindings.KafkaOperationBinding{GroupID: "g"}},
		})

	d, err := b.Build()
	require.NoError(t, err)

	// Mutating the builder after Build.
	b.Server("other", KafkaServer("other:9092"))

	// Mutating returned values.
	servers := d.Servers()
	servers["kafka"] = Server{}
	producers := d.Producers()
	producers[0].ChannelName = "changed"
	producers[0].Bindings[bindings.AMQP] = bindings.AMQPOperationBinding{}
	info := d.Info()
	info.Contact.Name = "changed"

	assert.Len(t, d.Servers(), 1)
	assert.Equal(t, "kafka:9092", d.Servers()["kafka"].URL)
	assert.Equal(t, "topic", d.Producers()[0].ChannelName)
	assert.Len(t, d.Producers()[0].Bindings, 1)
	assert.Equal(t, "ops", d.Info().Contact.Name)
}

func TestPayloadConstructors(t *testing.T) {
	p := PayloadFor[orderEvent]()
	assert.Equal(t, "orderEvent", p.Type.Name())
	assert.False(t, p.IsZero())

	p = PayloadOf(&orderEvent{})
	assert.Equal(t, "*docket.orderEvent", p.Type.String())

	p = PayloadSchema(Ref("Order")).Named("OrderCreated")
	assert.Equal(t, "<Order>", p.Schema.Value)
	assert.Equal(t, "OrderCreated", p.Name)

	assert.True(t, Payload{}.IsZero())
}

func TestBuild_BindingsAreCopied(t *testing.T) {
	fields := map[string]any{"qos": 1, "topics": []any{"a"}}
	amqp := bindings.AMQPOperationBinding{CC: []string{"a"}}
	channel := bindings.AMQPChannelBinding{Is: "queue", Queue: &bindings.AMQPQueue{Name: "orders"}}

	d, err := NewBuilder().
		Info(testInfo()).
		Producer(ProducerData{
			ChannelName:     "orders",
			Payload:         PayloadFor[string](),
			Bindings:        bindings.Bindings{bindings.MQTT: bindings.NewGeneric(bindings.MQTT, fields), bindings.AMQP: amqp},
			ChannelBindings: bindings.Bindings{bindings.AMQP: channel},
		}).
		Build()
	require.NoError(t, err)

	// changes to the declared values after Build
	fields["qos"] = 2
	fields["topics"].([]any)[0] = "b"
	amqp.CC[0] = "mutated"
	channel.Queue.Name = "mutated"

	// changes through an accessor result
	got := d.Producers()[0]
	got.Bindings[bindings.MQTT].(bindings.Generic).Fields["retain"] = true
	got.Bindings[bindings.AMQP].(bindings.AMQPOperationBinding).CC[0] = "mutated"
	got.ChannelBindings[bindings.AMQP].(bindings.AMQPChannelBinding).Queue.Name = "mutated"

	fresh := d.Producers()[0]
	assert.Equal(t, map[string]any{"qos": 1, "topics": []any{"a"}}, fresh.Bindings[bindings.MQTT].(bindings.Generic).Fields)
	assert.Equal(t, []string{"a"}, fresh.Bindings[bindings.AMQP].(bindings.AMQPOperationBinding).CC)
	assert.Equal(t, "orders", fresh.ChannelBindings[bindings.AMQP].(bindings.AMQPChannelBinding).Queue.Name)
}
