package routes

import (
	"fmt"
	"net/http"
	"strings"
)

/* Resource declares one routable entity: its URL segment and the five
 * standard operations. The table is assembled statically at startup;
 * nothing is discovered at runtime.
 */
type Resource struct {
	Name string // URL segment under /api, e.g. "author"
	Ops  Operations
}

// Operations holds the handlers bound to the conventional REST pairing:
// GET /, POST /, GET /{id}, PUT /{id}, DELETE /{id}.
type Operations struct {
	List   http.Handler
	Create http.Handler
	Get    http.Handler
	Update http.Handler
	Delete http.Handler
}

// Validate checks the resource declaration is complete.
func (r Resource) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("resource name cannot be empty")
	}
	if r.Name != strings.ToLower(r.Name) || strings.ContainsAny(r.Name, "/ ") {
		return fmt.Errorf("invalid resource name %q: must be lowercase with no slashes or spaces", r.Name)
	}
	ops := map[string]http.Handler{
		"list":   r.Ops.List,
		"create": r.Ops.Create,
		"get":    r.Ops.Get,
		"update": r.Ops.Update,
		"delete": r.Ops.Delete,
	}
	for name, h := range ops {
		if h == nil {
			return fmt.Errorf("resource %s: missing %s operation", r.Name, name)
		}
	}
	return nil
}

// Prefix returns the URL prefix the resource binds under.
func (r Resource) Prefix() string {
	return "/api/" + r.Name
}
