package facade

import (
	"context"
	"fmt"

	"github.com/rcbridge/rcbridge-go/pkg/rpc"
	"github.com/rcbridge/rcbridge-go/pkg/version"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// Catalog RPC methods.
const (
	MethodListMethods = "rpcListMethods"
	MethodDescribe    = "rpcDescribe"
)

// Catalog describes the methods of a session.
type Catalog struct {
	manifest *version.Manifest
	methods  func() []string
}

// NewCatalog creates a catalog. methods lists the registered methods; manifest
// supplies descriptions and may be nil.
func NewCatalog(manifest *version.Manifest, methods func() []string) *Catalog {
	return &Catalog{manifest: manifest, methods: methods}
}

// Methods returns the registered method names, sorted.
func (c *Catalog) Methods() []string {
	return c.methods()
}

// Describe returns the manifest entry of a registered method.
func (c *Catalog) Describe(method string) (version.MethodSpec, error) {
	registered := false
	for _, m := range c.methods() {
		if m == method {
			registered = true
			break
		}
	}
	if !registered {
		return version.MethodSpec{}, &wire.Error{Code: wire.CodeNotFound, Message: "unknown method " + method}
	}
	if c.manifest == nil {
		return version.MethodSpec{Name: method}, nil
	}
	spec, ok := c.manifest.Method(method)
	if !ok {
		return version.MethodSpec{}, &wire.Error{
			Code:    wire.CodeNotFound,
			Message: fmt.Sprintf("%s is not described by manifest %s", method, c.manifest.Version),
		}
	}
	return spec, nil
}

// Register adds the catalog methods to r.
func (c *Catalog) Register(r rpc.Registrar) error {
	return register(r, map[string]rpc.Handler{
		MethodListMethods: func(context.Context, wire.Params) (any, error) {
			return c.Methods(), nil
		},
		MethodDescribe: func(_ context.Context, p wire.Params) (any, error) {
			name, err := p.String("method")
			if err != nil {
				return nil, err
			}
			return c.Describe(name)
		},
	})
}
