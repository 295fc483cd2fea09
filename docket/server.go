package docket

import "github.com/masnyjimmy/asyncdocket/bindings"

// Server describes how to connect to a message broker.
type Server struct {
	URL             string `json:"url" yaml:"url"`
	Protocol        string `json:"protocol" yaml:"protocol"`
	ProtocolVersion string `json:"protocolVersion,omitempty" yaml:"protocolVersion,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
}

func KafkaServer(url string) Server {
	return Server{URL: url, Protocol: bindings.Kafka}
}

func AMQPServer(url string) Server {
	return Server{URL: url, Protocol: bindings.AMQP, ProtocolVersion: "0.9.1"}
}

func MQTTServer(url string) Server {
	return Server{URL: url, Protocol: bindings.MQTT}
}
