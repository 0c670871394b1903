package router

import (
	"github.com/cileamzh/cileamzh-web/request"
	"github.com/cileamzh/cileamzh-web/response"
)

// Chain is an ordered list of middleware handlers. Every handler runs
// for every request, in registration order, before any routing
// decision. No handler can stop the ones after it; anything one writes
// into the response may be overwritten later.
type Chain struct {
	handlers []Handler
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Use appends h to the chain.
func (c *Chain) Use(h Handler) {
	c.handlers = append(c.handlers, h)
}

// Run invokes every handler in order against req and res.
func (c *Chain) Run(req *request.Request, res *response.Response) {
	for _, h := range c.handlers {
		h(req, res)
	}
}

// Len returns the number of handlers in the chain.
func (c *Chain) Len() int {
	return len(c.handlers)
}
