package filterspec

import (
	"net/url"
	"strings"

	"github.com/unkn0wn-root/richlist/internal/errdef"
)

// Reserved query keys that are never filters.
var Reserved = []string{"league", "ordering", "page", "format"}

// FromURL extracts the filter terms of a page URL in order. Terms that
// parse are re-encoded the way the filter panel encodes values, so
// "name=a%20b" and "name=a+b" come out the same. Valueless flags (display
// options) and reserved keys are skipped, as are keys listed in extra.
func FromURL(rawURL string, extra ...string) ([]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilter, err, "parse page url")
	}
	return fromQuery(u.RawQuery, extra...), nil
}

func fromQuery(rawQuery string, extra ...string) []string {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	if rawQuery == "" {
		return nil
	}

	skip := make(map[string]struct{}, len(Reserved)+len(extra))
	for _, k := range Reserved {
		skip[k] = struct{}{}
	}
	for _, k := range extra {
		skip[k] = struct{}{}
	}

	var out []string
	for _, term := range strings.Split(rawQuery, "&") {
		key, _, ok := strings.Cut(term, "=")
		if !ok || key == "" {
			continue
		}
		if _, reserved := skip[key]; reserved {
			continue
		}
		if spec, err := Parse(term); err == nil {
			term = spec.Term()
		}
		out = append(out, term)
	}
	return out
}
