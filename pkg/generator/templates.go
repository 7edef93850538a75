package generator

// Template data structures

type routerModuleData struct {
	Banner        string
	SchemaVersion int
	Routes        []jsRoute
}

type pageTemplateData struct {
	Title  string
	Params []string
}

// Router module template. Components are imported lazily so the bundler
// splits one chunk per page.
var routerModuleTemplate = `// {{.Banner}}
/* eslint-disable */

export const schemaVersion = {{.SchemaVersion}}

export const routes = [
{{- range .Routes}}
{{template "route" .}}
{{- end}}
]
{{define "route"}}{{.Indent}}{
{{.Indent}}  path: "{{js .Path}}",
{{- if .Component}}
{{.Indent}}  component: () => import(/* webpackChunkName: "{{.ChunkName}}" */ "{{escape .Component}}"),
{{- end}}
{{- if .Name}}
{{.Indent}}  name: "{{js .Name}}",
{{- end}}
{{- if .Strict}}
{{.Indent}}  pathToRegexpOptions: { strict: true },
{{- end}}
{{- if .Children}}
{{.Indent}}  children: [
{{- range .Children}}
{{template "route" .}}
{{- end}}
{{.Indent}}  ],
{{- end}}
{{.Indent}}},{{end}}`

// Page templates, keyed by file extension
var pageTemplates = map[string]string{
	"vue": `<template>
  <main>
    <h1>{{.Title}}</h1>
{{- range .Params}}
    <p>{{.}}: {{"{{"}} $route.params.{{.}} {{"}}"}}</p>
{{- end}}
  </main>
</template>

<script>
export default {
  name: '{{.Title}}'
}
</script>
`,
	"js": `export default {
  name: '{{.Title}}',
  render(h) {
    return h('main', [
      h('h1', '{{.Title}}'),
{{- range .Params}}
      h('p', '{{.}}: ' + this.$route.params.{{.}}),
{{- end}}
    ])
  }
}
`,
}
