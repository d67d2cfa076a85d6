// Package filterspec reads and writes the filter terms a rich list view
// accepts in its query string, e.g. "game__name=Catan" or "week__gt=5".
package filterspec

import (
	"net/url"
	"strings"

	"github.com/unkn0wn-root/richlist/internal/errdef"
)

const (
	componentSep = "__"
	LookupExact  = "exact"
)

// operatorText maps lookups to the words used when a filter is described
// to a person.
var operatorText = map[string]string{
	"exact":       " = ",
	"iexact":      " = ",
	"contains":    " contains ",
	"icontains":   " contains ",
	"startswith":  " starts with ",
	"istartswith": " starts with ",
	"endswith":    " ends with ",
	"iendswith":   " ends with ",
	"range":       " is between ",
	"isnull":      " is NULL ",
	"regex":       " matches ",
	"iregex":      " matches ",
	"in":          " is in ",
	"gt":          " > ",
	"gte":         " >= ",
	"lt":          " < ",
	"lte":         " <= ",
}

// IsLookup reports whether s names a supported lookup.
func IsLookup(s string) bool {
	_, ok := operatorText[s]
	return ok
}

type Spec struct {
	Components []string
	Lookup     string
	Value      string
}

// Parse reads a "name=value" term. The value may be query-escaped.
func Parse(term string) (Spec, error) {
	name, raw, ok := strings.Cut(term, "=")
	if !ok {
		return Spec{}, errdef.New(errdef.CodeFilter, "filter %q has no value", term)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Spec{}, errdef.New(errdef.CodeFilter, "filter %q has no field", term)
	}
	value, err := url.QueryUnescape(raw)
	if err != nil {
		return Spec{}, errdef.Wrap(errdef.CodeFilter, err, "decode filter %q", term)
	}

	components := strings.Split(name, componentSep)
	for _, c := range components {
		if c == "" {
			return Spec{}, errdef.New(errdef.CodeFilter, "filter %q has an empty component", term)
		}
	}

	lookup := LookupExact
	if n := len(components); n > 1 && IsLookup(components[n-1]) {
		lookup = components[n-1]
		components = components[:n-1]
	}
	return Spec{Components: components, Lookup: lookup, Value: value}, nil
}

// Field is the model field path without the lookup.
func (s Spec) Field() string {
	return strings.Join(s.Components, componentSep)
}

// Term renders the spec the way the server expects it in a URL.
func (s Spec) Term() string {
	var sb strings.Builder
	sb.WriteString(s.Field())
	if s.Lookup != "" && s.Lookup != LookupExact {
		sb.WriteString(componentSep)
		sb.WriteString(s.Lookup)
	}
	sb.WriteByte('=')
	sb.WriteString(url.QueryEscape(s.Value))
	return sb.String()
}

// Text renders the spec for display, e.g. "game name contains cat".
func (s Spec) Text() string {
	op, ok := operatorText[s.Lookup]
	if !ok {
		op = " = "
	}
	return strings.Join(s.Components, " ") + op + s.Value
}

// Describe joins the readable form of each parseable term with " and ".
// Terms that do not parse are shown verbatim.
func Describe(terms []string) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		spec, err := Parse(term)
		if err != nil {
			parts = append(parts, term)
			continue
		}
		parts = append(parts, spec.Text())
	}
	return strings.Join(parts, " and ")
}
