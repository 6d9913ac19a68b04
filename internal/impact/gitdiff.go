package impact

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	rlerrors "routelens/internal/errors"
	"routelens/internal/paths"
)

// ChangedFiles returns the repo-relative paths touched between two resolved
// revisions. Deleted files report their old path so dependents of a removed
// module are still selected. Both revisions must have passed
// ValidateRevision before this is called.
func ChangedFiles(ctx context.Context, repoRoot, baseRev, headRev string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", baseRev, headRev) // #nosec G204 -- revisions are allow-list validated
	cmd.Dir = repoRoot
	out, err := cmd.Output()
	if err != nil {
		return nil, rlerrors.New(rlerrors.GitUnavailable,
			fmt.Sprintf("git diff %s %s failed", baseRev, headRev), err)
	}

	return ParseDiff(string(out))
}

// ParseDiff extracts the changed file paths from a unified diff.
func ParseDiff(diffContent string) ([]string, error) {
	if strings.TrimSpace(diffContent) == "" {
		return nil, nil
	}

	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(diffContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	seen := map[string]bool{}
	var files []string
	for _, fd := range fileDiffs {
		p := cleanDiffPath(fd.NewName)
		if p == "" {
			p = cleanDiffPath(fd.OrigName)
		}
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		files = append(files, p)
	}

	sort.Strings(files)
	return files, nil
}

// cleanDiffPath strips the a/ or b/ prefix git puts on diff paths and
// normalizes separators. /dev/null marks a created or deleted side.
func cleanDiffPath(path string) string {
	if path == "" || path == "/dev/null" {
		return ""
	}
	if strings.HasPrefix(path, "a/") || strings.HasPrefix(path, "b/") {
		path = path[2:]
	}
	return paths.Normalize(path)
}
