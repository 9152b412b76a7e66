package routes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

/* Registry holds the validated routing table consumed by the dispatcher.
 * It is built once at process startup; a bad declaration is a fatal
 * configuration error, never a silent override.
 */
type Registry struct {
	resources []Resource
}

// NewRegistry validates every declared resource and rejects duplicate
// prefixes. A later declaration never silently replaces an earlier one.
func NewRegistry(resources ...Resource) (*Registry, error) {
	seen := make(map[string]bool, len(resources))
	for _, res := range resources {
		if err := res.Validate(); err != nil {
			return nil, fmt.Errorf("validating route table: %w", err)
		}
		if seen[res.Name] {
			return nil, fmt.Errorf("duplicate route prefix %s", res.Prefix())
		}
		seen[res.Name] = true
	}
	return &Registry{resources: resources}, nil
}

// Mount binds every resource's operations under its prefix.
func (reg *Registry) Mount(r chi.Router) {
	for _, res := range reg.resources {
		res := res
		r.Route(res.Prefix(), func(r chi.Router) {
			r.Method(http.MethodGet, "/", res.Ops.List)
			r.Method(http.MethodPost, "/", res.Ops.Create)
			r.Method(http.MethodGet, "/{id}", res.Ops.Get)
			r.Method(http.MethodPut, "/{id}", res.Ops.Update)
			r.Method(http.MethodDelete, "/{id}", res.Ops.Delete)
		})
	}
}

// Resources returns the declared resources in registration order.
func (reg *Registry) Resources() []Resource {
	return reg.resources
}
