package interaction

import (
	"path"
	"strings"

	"routelens/internal/paths"
)

// pageMarkers are filenames (without extension) that name a directory's page
// rather than a path segment of their own.
var pageMarkers = map[string]bool{
	"page":  true,
	"index": true,
	"route": true,
}

// DeriveRouteID derives the normalized route id for a surface file. The input
// is the file's repo-relative path in either separator style; roots are the
// configured surface directory prefixes, tried in order.
//
// The id always begins with "/"; the root route is exactly "/". Derivation is
// deterministic and idempotent under separator normalization.
func DeriveRouteID(relPath string, roots []string) string {
	p := strings.TrimPrefix(paths.Normalize(relPath), "./")

	for _, root := range roots {
		root = strings.TrimSuffix(paths.Normalize(root), "/")
		if root == "" {
			continue
		}
		if p == root {
			p = ""
			break
		}
		if strings.HasPrefix(p, root+"/") {
			p = p[len(root)+1:]
			break
		}
	}

	segments := strings.Split(p, "/")
	if len(segments) > 0 {
		last := segments[len(segments)-1]
		base := strings.TrimSuffix(last, path.Ext(last))
		if pageMarkers[base] {
			segments = segments[:len(segments)-1]
		} else if base != "" {
			segments[len(segments)-1] = base
		}
	}

	var kept []string
	for _, s := range segments {
		if s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return "/"
	}
	return "/" + strings.Join(kept, "/")
}
