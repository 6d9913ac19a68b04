package impact

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	rlerrors "routelens/internal/errors"
)

// revisionPattern is the allow-list for revision strings. Anything a git
// revision can legitimately contain is here; whitespace and shell
// metacharacters are not. Validation happens before any subprocess sees the
// string.
var revisionPattern = regexp.MustCompile(`^[A-Za-z0-9._/~^-]+$`)

// ValidateRevision checks a revision string against the allow-list.
func ValidateRevision(rev string) error {
	if rev == "" {
		return rlerrors.New(rlerrors.RevisionInvalid, "revision is empty", nil)
	}
	if !revisionPattern.MatchString(rev) {
		return rlerrors.New(rlerrors.RevisionInvalid,
			fmt.Sprintf("revision %q contains characters outside the allowed set", rev), nil)
	}
	return nil
}

// ResolveRevision validates a revision and resolves it to a commit id via
// git rev-parse. The returned value is the full object name.
func ResolveRevision(ctx context.Context, repoRoot, rev string) (string, error) {
	if err := ValidateRevision(rev); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--verify", rev+"^{commit}")
	cmd.Dir = repoRoot
	out, err := cmd.Output()
	if err != nil {
		if _, lookErr := exec.LookPath("git"); lookErr != nil {
			return "", rlerrors.New(rlerrors.GitUnavailable, "git executable not found", lookErr)
		}
		return "", rlerrors.New(rlerrors.RevisionUnresolved,
			fmt.Sprintf("revision %q does not resolve to a commit", rev), err)
	}
	return strings.TrimSpace(string(out)), nil
}
