package compilation

import "github.com/masnyjimmy/asyncdocket/bindings"

// Channel aggregates every operation declared on a channel name. Subscribe
// holds messages the application sends, Publish the ones it receives.
type Channel struct {
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Subscribe   *Operation        `json:"subscribe,omitempty" yaml:"subscribe,omitempty"`
	Publish     *Operation        `json:"publish,omitempty" yaml:"publish,omitempty"`
	Bindings    bindings.Bindings `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

type Operation struct {
	OperationID string            `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        Tags              `json:"tags,omitempty" yaml:"tags,omitempty"`
	Bindings    bindings.Bindings `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	Message     Messages          `json:"message" yaml:"message"`
}

// merge folds next into c. Scalars of next win when set, bindings are
// unioned by protocol and messages by name.
func (c Channel) merge(next Channel) Channel {
	if next.Description != "" {
		c.Description = next.Description
	}
	c.Subscribe = c.Subscribe.merge(next.Subscribe)
	c.Publish = c.Publish.merge(next.Publish)
	c.Bindings = bindings.Merge(c.Bindings, next.Bindings)
	return c
}

func (o *Operation) merge(next *Operation) *Operation {
	if next == nil {
		return o
	}
	if o == nil {
		return next
	}

	out := *o
	if next.OperationID != "" {
		out.OperationID = next.OperationID
	}
	if next.Description != "" {
		out.Description = next.Description
	}
	out.Tags = o.Tags.Union(next.Tags)
	out.Bindings = bindings.Merge(o.Bindings, next.Bindings)
	out.Message = o.Message.union(next.Message)
	return &out
}
