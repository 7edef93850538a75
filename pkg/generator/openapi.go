package generator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abdul-hamid-achik/pagetree/internal/version"
	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/samber/lo"
)

// catchAllParam names the parameter a "*" token is exposed as.
const catchAllParam = "pathMatch"

// OpenAPI builds an OpenAPI document with one GET operation per page URL.
// Optional parameters produce two paths, with and without the parameter.
func (g *Generator) OpenAPI(rs []*routes.Route) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   g.config.Title,
			Version: version.GetVersion(),
		},
		Paths: openapi3.NewPaths(),
		Extensions: map[string]any{
			"x-pagetree-schema": version.ManifestSchemaVersion,
		},
	}

	var templates []string
	for p := range routes.Flatten(rs) {
		templates = append(templates, expandOptional(p)...)
	}
	templates = lo.Uniq(lo.Map(templates, func(p string, _ int) string {
		return toOpenAPIPath(p)
	}))
	slices.Sort(templates)

	for _, p := range templates {
		doc.Paths.Set(p, &openapi3.PathItem{Get: buildOperation(p)})
	}

	return doc
}

// expandOptional turns "/users/:id?" into "/users" and "/users/:id".
func expandOptional(p string) []string {
	out := []string{""}
	for _, tok := range strings.Split(strings.Trim(p, "/"), "/") {
		if tok == "" {
			continue
		}
		seg := routes.ParsePatternToken(tok)
		if seg.Type != routes.SegmentOptionalDynamic {
			for i := range out {
				out[i] += "/" + tok
			}
			continue
		}
		with := make([]string, len(out))
		for i, prefix := range out {
			with[i] = prefix + "/:" + seg.Name
		}
		out = append(out, with...)
	}

	trailing := len(p) > 1 && strings.HasSuffix(p, "/")
	for i := range out {
		if out[i] == "" {
			out[i] = "/"
		} else if trailing {
			out[i] += "/"
		}
	}
	return out
}

// toOpenAPIPath converts router tokens to OpenAPI templates:
// /users/:id -> /users/{id}, /docs/* -> /docs/{pathMatch}
func toOpenAPIPath(p string) string {
	parts := strings.Split(p, "/")
	for i, tok := range parts {
		seg := routes.ParsePatternToken(tok)
		switch seg.Type {
		case routes.SegmentDynamic, routes.SegmentOptionalDynamic:
			parts[i] = "{" + seg.Name + "}"
		case routes.SegmentCatchAll:
			parts[i] = "{" + catchAllParam + "}"
		}
	}
	return strings.Join(parts, "/")
}

// buildOperation creates the GET operation for a page path.
func buildOperation(p string) *openapi3.Operation {
	op := &openapi3.Operation{
		Summary:   "Render " + p,
		Tags:      []string{extractTag(p)},
		Responses: openapi3.NewResponses(),
	}

	params := buildParameters(p)
	if len(params) > 0 {
		op.Parameters = params
	}

	op.Responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: openapi3.Ptr("Rendered page"),
			Content:     openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"}),
		},
	})
	if len(params) > 0 {
		op.Responses.Set("404", &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: openapi3.Ptr("Not Found"),
			},
		})
	}

	return op
}

// buildParameters extracts path parameters from a template.
// Example: /users/{id} -> [Parameter{name: "id", in: "path"}]
func buildParameters(p string) openapi3.Parameters {
	var params openapi3.Parameters

	for _, seg := range strings.Split(p, "/") {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := seg[1 : len(seg)-1]

		desc := fmt.Sprintf("%s parameter", name)
		if name == catchAllParam {
			desc = "Remainder of the path"
		}

		params = append(params, &openapi3.ParameterRef{Value: &openapi3.Parameter{
			Name:        name,
			In:          openapi3.ParameterInPath,
			Required:    true,
			Description: desc,
			Schema:      &openapi3.SchemaRef{Value: openapi3.NewStringSchema()},
		}})
	}

	return params
}

// extractTag uses the first static segment as the tag.
func extractTag(p string) string {
	for _, seg := range strings.Split(p, "/") {
		if seg != "" && !strings.HasPrefix(seg, "{") {
			return seg
		}
	}
	return "default"
}
