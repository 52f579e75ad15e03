package swaggerkit

import "strings"

const errorSchemaRef = "#/components/schemas/ErrorResponse"

// defaultResponses are added to every operation that does not declare them
var defaultResponses = map[string]struct {
	desc string
	msg  string
}{
	"400": {"Bad Request", "invalid structure: missing columns: Suara"},
	"500": {"Internal Server Error", "panic recovered"},
}

// patchSpec lifts the document to OAS 3.0.3, pins the server url and adds the error envelope
func patchSpec(spec map[string]any, serverURL string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": serverURL}}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer", "format": "int32"},
				"status":      map[string]any{"type": "string"},
				"code":        map[string]any{"type": "integer", "format": "int32"},
				"error":       map[string]any{"type": "string"},
				"request_id":  map[string]any{"type": "string"},
			},
			"required": []any{"status_code", "status"},
		}
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			for code, d := range defaultResponses {
				if _, ok := responses[code]; !ok {
					responses[code] = errorResponse(code, d.desc, d.msg)
				}
			}
		}
	}
}

func errorResponse(code, desc, msg string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": errorSchemaRef},
				"example": map[string]any{"status": desc, "error": msg},
			},
		},
	}
}

// child returns m[key] as a map, creating it when missing
func child(m map[string]any, key string) map[string]any {
	if c, ok := m[key].(map[string]any); ok {
		return c
	}
	c := map[string]any{}
	m[key] = c
	return c
}
