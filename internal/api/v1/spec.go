// Package apiv1 loads the published OpenAPI document of the HTTP API.
package apiv1

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadSpec reads and validates the OpenAPI document at path.
func LoadSpec(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", path, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate %s: %w", path, err)
	}
	return doc, nil
}

// HasOperation reports whether doc documents method on a fiber route path
// such as /sos/:id/status.
func HasOperation(doc *openapi3.T, method, routePath string) bool {
	if doc == nil || doc.Paths == nil {
		return false
	}
	item := doc.Paths.Value(ToOpenAPIPath(routePath))
	if item == nil {
		return false
	}
	return item.GetOperation(strings.ToUpper(method)) != nil
}

// ToOpenAPIPath converts fiber parameters (:id) to OpenAPI templates ({id}).
func ToOpenAPIPath(routePath string) string {
	segments := strings.Split(routePath, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") {
			segments[i] = "{" + strings.TrimSuffix(strings.TrimPrefix(s, ":"), "?") + "}"
		}
	}
	return strings.Join(segments, "/")
}
