// Package doc parses doxygen-style `/** ... */` doc comments attached to
// XS declarations.
package doc

import "strings"

// Doc is a parsed doc comment: either a plain description, or a function
// description carrying per-parameter and return-value text.
type Doc struct {
	Description string
	Params      []ParamDoc
	Returns     string
	IsFn        bool
}

type ParamDoc struct {
	Name string
	Text string
}

// Parse strips the `/** */` delimiters from raw and extracts any `@param`
// and `@returns` tags, leaving the remaining lines as the description.
func Parse(raw string) Doc {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "/**")
	body = strings.TrimSuffix(body, "*/")

	var descLines []string
	var params []ParamDoc
	var returns string

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "@param"):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "@param"))
			parts := strings.SplitN(rest, " ", 2)
			pd := ParamDoc{Name: parts[0]}
			if len(parts) > 1 {
				pd.Text = strings.TrimSpace(parts[1])
			}
			params = append(params, pd)
		case strings.HasPrefix(line, "@returns"):
			returns = strings.TrimSpace(strings.TrimPrefix(line, "@returns"))
		case strings.HasPrefix(line, "@return"):
			returns = strings.TrimSpace(strings.TrimPrefix(line, "@return"))
		default:
			descLines = append(descLines, line)
		}
	}

	d := Doc{
		Description: strings.Join(descLines, " "),
		Params:      params,
		Returns:     returns,
	}
	d.IsFn = len(params) > 0 || returns != ""
	return d
}
