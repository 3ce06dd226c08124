package prompt

import (
	"embed"
)

//go:embed templates/*.md
var builtinFS embed.FS

// loadBuiltin loads a built-in template by name.
func loadBuiltin(name string) (*Template, error) {
	data, err := builtinFS.ReadFile("templates/" + name + ".md")
	if err != nil {
		return nil, err
	}
	return parseTemplate(string(data))
}
