package compilation

import "github.com/masnyjimmy/asyncdocket/docket"

const AsyncAPIVersion = "2.0.0"

type (
	Info   = docket.Info
	Server = docket.Server
	Tag    = docket.Tag
	Tags   = docket.Tags
)

// Document is an AsyncAPI 2.0.0 document.
type Document struct {
	AsyncAPI           string             `json:"asyncapi" yaml:"asyncapi"`
	ID                 string             `json:"id,omitempty" yaml:"id,omitempty"`
	Info               Info               `json:"info" yaml:"info"`
	Servers            map[string]Server  `json:"servers,omitempty" yaml:"servers,omitempty"`
	DefaultContentType string             `json:"defaultContentType,omitempty" yaml:"defaultContentType,omitempty"`
	Tags               Tags               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Channels           map[string]Channel `json:"channels" yaml:"channels"`
	Components         *Components        `json:"components,omitempty" yaml:"components,omitempty"`
}

type Components struct {
	Schemas map[string]SchemaOrRef `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}
