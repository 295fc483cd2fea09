package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocket(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name: "minimal",
			input: `
info:
  title: Orders
  version: "1.0.0"
`,
		},
		{
			name: "complete",
			input: `
id: urn:example:orders
info: {title: Orders, version: "1.0.0", license: {name: MIT}}
servers:
  kafka: {url: "kafka:9092", protocol: kafka}
schemas:
  Order:
    id: string
    lines:
      sku: string
producers:
  - channel: orders
    payload: <Order>
    bindings:
      kafka: {groupId: orders}
consumers:
  - channel: commands
    payload: string
    bindings:
      kafka:
`,
		},
		{
			name:    "missing info",
			input:   "producers: []\n",
			wantErr: true,
		},
		{
			name:    "numeric version",
			input:   "info: {title: T, version: 1}\n",
			wantErr: true,
		},
		{
			name: "producer without channel",
			input: `
info: {title: T, version: "1"}
producers:
  - payload: string
`,
			wantErr: true,
		},
		{
			name: "unknown top level key",
			input: `
info: {title: T, version: "1"}
paths: {}
`,
			wantErr: true,
		},
		{
			name: "server without protocol",
			input: `
info: {title: T, version: "1"}
servers:
  kafka: {url: "kafka:9092"}
`,
			wantErr: true,
		},
		{
			name:    "not yaml",
			input:   "info: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocket([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateDocument(t *testing.T) {
	valid := `{
		"asyncapi": "2.0.0",
		"info": {"title": "T", "version": "1"},
		"channels": {
			"orders": {
				"subscribe": {
					"operationId": "ordersSubscribe",
					"message": {"oneOf": [{"name": "A"}, {"name": "B"}]}
				},
				"publish": {
					"message": {"name": "C", "payload": {"type": "string"}}
				}
			}
		}
	}`
	require.NoError(t, ValidateDocument([]byte(valid)))

	invalid := `{
		"asyncapi": "2.0.0",
		"info": {"title": "T", "version": "1"},
		"channels": {"orders": {"subscribe": {}}}
	}`
	assert.Error(t, ValidateDocument([]byte(invalid)))

	assert.Error(t, ValidateDocument([]byte(`{"asyncapi": "3.0.0", "info": {"title": "T", "version": "1"}, "channels": {}}`)))
	assert.Error(t, ValidateDocument([]byte(`not json`)))
}
