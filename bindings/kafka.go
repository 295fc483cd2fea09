package bindings

import "encoding/json"

const defaultKafkaBindingVersion = "0.1.0"

// KafkaOperationBinding describes the consumer group and client used when
// publishing or consuming from a Kafka topic.
type KafkaOperationBinding struct {
	GroupID        string `yaml:"groupId,omitempty"`
	ClientID       string `yaml:"clientId,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty"`
}

func (KafkaOperationBinding) Protocol() string { return Kafka }

func (b KafkaOperationBinding) document() map[string]any {
	out := map[string]any{
		"bindingVersion": versionOr(b.BindingVersion, defaultKafkaBindingVersion),
	}
	if b.GroupID != "" {
		out["groupId"] = constSchema(b.GroupID)
	}
	if b.ClientID != "" {
		out["clientId"] = constSchema(b.ClientID)
	}
	return out
}

func (b KafkaOperationBinding) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.document())
}

func (b KafkaOperationBinding) MarshalYAML() (any, error) {
	return b.document(), nil
}

// KafkaMessageBinding carries the record key of a Kafka message.
type KafkaMessageBinding struct {
	Key            string `yaml:"key,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty"`
}

func (KafkaMessageBinding) Protocol() string { return Kafka }

func (b KafkaMessageBinding) document() map[string]any {
	out := map[string]any{
		"bindingVersion": versionOr(b.BindingVersion, defaultKafkaBindingVersion),
	}
	if b.Key != "" {
		out["key"] = constSchema(b.Key)
	}
	return out
}

func (b KafkaMessageBinding) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.document())
}

func (b KafkaMessageBinding) MarshalYAML() (any, error) {
	return b.document(), nil
}

// KafkaChannelBinding describes the topic backing a channel.
type KafkaChannelBinding struct {
	Topic          string `json:"topic,omitempty" yaml:"topic,omitempty"`
	Partitions     int    `json:"partitions,omitempty" yaml:"partitions,omitempty"`
	Replicas       int    `json:"replicas,omitempty" yaml:"replicas,omitempty"`
	BindingVersion string `json:"bindingVersion,omitempty" yaml:"bindingVersion,omitempty"`
}

func (KafkaChannelBinding) Protocol() string { return Kafka }

func versionOr(version, fallback string) string {
	if version == "" {
		return fallback
	}
	return version
}
