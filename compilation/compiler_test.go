package compilation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masnyjimmy/asyncdocket/bindings"
	"github.com/masnyjimmy/asyncdocket/docket"
)

const ordersDocket = `
id: urn:example:orders
info:
  title: Orders
  version: 1.0.0
tags:
  - name: orders
servers:
  kafka:
    url: kafka:9092
    protocol: kafka
schemas:
  OrderEvent:
    id: string($uuid)
    amount: number(0<)
    note?: string
  Unused: integer
producers:
  - channel: orders
    payload: <OrderEvent>
    bindings:
      kafka:
        groupId: orders
  - channel: orders
    message: Heartbeat
    payload: string
consumers:
  - channel: commands
    payload: string("cancel"|"retry")
`

func compileOrders(t *testing.T) *Document {
	t.Helper()

	d, err := docket.Parse([]byte(ordersDocket))
	require.NoError(t, err)

	doc, err := Compile(d)
	require.NoError(t, err)
	return doc
}

func TestCompile(t *testing.T) {
	doc := compileOrders(t)

	assert.Equal(t, AsyncAPIVersion, doc.AsyncAPI)
	assert.Equal(t, "urn:example:orders", doc.ID)
	assert.Equal(t, docket.DefaultContentType, doc.DefaultContentType)
	assert.Equal(t, Tags{{Name: "orders"}}, doc.Tags)
	assert.Equal(t, []string{"commands", "orders"}, ChannelNames(doc.Channels))

	require.NotNil(t, doc.Components)
	assert.Contains(t, doc.Components.Schemas, "OrderEvent")
	assert.Contains(t, doc.Components.Schemas, "Unused")

	orders := doc.Channels["orders"].Subscribe
	require.NotNil(t, orders)
	assert.Equal(t, []string{"OrderEvent", "Heartbeat"}, orders.Message.Names())
	assert.Equal(t, bindings.KafkaOperationBinding{GroupID: "orders"}, orders.Bindings[bindings.Kafka])

	commands := doc.Channels["commands"].Publish
	require.NotNil(t, commands)
	assert.Equal(t, []string{"CommandsMessage"}, commands.Message.Names())
}

func TestCompileInvalidDeclaredSchema(t *testing.T) {
	d, err := docket.NewBuilder().
		Info(docket.Info{Title: "T", Version: "1"}).
		Schema("Broken", docket.Expr("float")).
		Build()
	require.NoError(t, err)

	_, err = Compile(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `schema "Broken"`)
}

func TestCompileUnknownComponent(t *testing.T) {
	tests := []struct {
		name    string
		builder *docket.Builder
		want    string
	}{
		{
			name: "payload",
			builder: docket.NewBuilder().Producer(docket.ProducerData{
				ChannelName: "orders",
				Payload:     docket.Payload{Name: "OrderEvent", Schema: docket.Expr("<Missing>")},
			}),
			want: `channel "orders" message "OrderEvent"`,
		},
		{
			name:    "array items in declared schema",
			builder: docket.NewBuilder().Schema("Order", docket.Expr("<Line>[]")),
			want:    `schema "Order": items`,
		},
		{
			name: "nested property",
			builder: docket.NewBuilder().Consumer(docket.ConsumerData{
				ChannelName: "commands",
				Payload: docket.Payload{
					Name:   "Command",
					Schema: docket.Object(docket.Prop("total", docket.Expr("<Money>"))),
				},
			}),
			want: `property "total"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.builder.Info(docket.Info{Title: "T", Version: "1"}).Build()
			require.NoError(t, err)

			_, err = Compile(d)
			require.ErrorIs(t, err, ErrUnknownComponent)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompileToJSON(t *testing.T) {
	d, err := docket.Parse([]byte(ordersDocket))
	require.NoError(t, err)

	b, err := CompileToJSON(d)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	assert.Equal(t, "2.0.0", raw["asyncapi"])
	channels := raw["channels"].(map[string]any)
	subscribe := channels["orders"].(map[string]any)["subscribe"].(map[string]any)

	message := subscribe["message"].(map[string]any)
	oneOf, ok := message["oneOf"].([]any)
	require.True(t, ok, "two messages are written as oneOf")
	require.Len(t, oneOf, 2)

	first := oneOf[0].(map[string]any)
	assert.Equal(t, map[string]any{"$ref": "#/components/schemas/OrderEvent"}, first["payload"])

	kafka := subscribe["bindings"].(map[string]any)["kafka"].(map[string]any)
	assert.Equal(t, "0.1.0", kafka["bindingVersion"])

	publish := channels["commands"].(map[string]any)["publish"].(map[string]any)
	single := publish["message"].(map[string]any)
	assert.Equal(t, "CommandsMessage", single["name"])
	assert.Equal(t, []any{"cancel", "retry"}, single["payload"].(map[string]any)["enum"])
}

func TestCompileToYAML(t *testing.T) {
	d, err := docket.Parse([]byte(ordersDocket))
	require.NoError(t, err)

	b, err := CompileToYAML(d)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "asyncapi:"))

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(b, &raw))

	info := raw["info"].(map[string]any)
	assert.Equal(t, "Orders", info["title"])

	components := raw["components"].(map[string]any)["schemas"].(map[string]any)
	event := components["OrderEvent"].(map[string]any)
	assert.Equal(t, "object", event["type"])
	assert.ElementsMatch(t, []any{"id", "amount"}, event["required"])
}

func TestCompileJSONIsDeterministic(t *testing.T) {
	d, err := docket.Parse([]byte(ordersDocket))
	require.NoError(t, err)

	first, err := CompileToJSON(d)
	require.NoError(t, err)
	for range 5 {
		next, err := CompileToJSON(d)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(next))
	}
}
