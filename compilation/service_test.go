package compilation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masnyjimmy/asyncdocket/bindings"
	"github.com/masnyjimmy/asyncdocket/docket"
)

func newTestDocket(t *testing.T) *docket.Docket {
	t.Helper()

	kafkaProducerData := docket.ProducerData{
		ChannelName: "producer-topic",
		Payload:     docket.PayloadFor[string](),
		Bindings:    bindings.Bindings{bindings.Kafka: bindings.KafkaOperationBinding{}},
	}

	d, err := docket.NewBuilder().
		Info(docket.Info{Title: "Test", Version: "1.0.0"}).
		Server("kafka", docket.KafkaServer("kafka:9092")).
		Producer(kafkaProducerData).
		Build()
	require.NoError(t, err)
	return d
}

func TestService_InfoShouldBeCorrect(t *testing.T) {
	d := newTestDocket(t)

	doc, err := NewService(d).AsyncAPI()
	require.NoError(t, err)

	assert.Equal(t, d.Info(), doc.Info)
}

func TestService_ServersShouldBeCorrect(t *testing.T) {
	d := newTestDocket(t)

	doc, err := NewService(d).AsyncAPI()
	require.NoError(t, err)

	assert.Equal(t, d.Servers(), doc.Servers)
}

func TestService_ProducersShouldBeCorrect(t *testing.T) {
	d := newTestDocket(t)

	doc, err := NewService(d).AsyncAPI()
	require.NoError(t, err)

	require.NotEmpty(t, doc.Channels)
	require.Contains(t, doc.Channels, "producer-topic")

	channel := doc.Channels["producer-topic"]
	require.NotNil(t, channel.Subscribe)
	assert.Nil(t, channel.Publish)
	assert.Equal(t, "producerTopicSubscribe", channel.Subscribe.OperationID)
	assert.Contains(t, channel.Subscribe.Bindings, bindings.Kafka)
	assert.Equal(t, []string{"string"}, channel.Subscribe.Message.Names())
}

func TestService_RegeneratesOnEachCall(t *testing.T) {
	s := NewService(newTestDocket(t))

	first, err := s.AsyncAPI()
	require.NoError(t, err)
	first.Channels["producer-topic"] = Channel{}

	second, err := s.AsyncAPI()
	require.NoError(t, err)
	assert.NotNil(t, second.Channels["producer-topic"].Subscribe)
}

func TestService_CustomScanners(t *testing.T) {
	d, err := docket.NewBuilder().
		Info(docket.Info{Title: "Test", Version: "1.0.0"}).
		Producer(docket.ProducerData{ChannelName: "out"}).
		Consumer(docket.ConsumerData{ChannelName: "in"}).
		Build()
	require.NoError(t, err)

	doc, err := NewService(d, ConsumerChannelScanner{}).AsyncAPI()
	require.NoError(t, err)

	assert.Equal(t, []string{"in"}, ChannelNames(doc.Channels))
}

func TestCompileNilDocket(t *testing.T) {
	_, err := Compile(nil)
	require.ErrorIs(t, err, docket.ErrMissingInfo)
}
