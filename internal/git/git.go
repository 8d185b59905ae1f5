// Package git is the version-control collaborator for relver. It uses the
// go-git library for all repository operations (tag listing, history walks,
// tag creation, pushes) so no git binary is required. Network operations
// take a context and use SSH agent auth for SSH remotes and environment
// credentials for HTTPS remotes.
package git

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/raveheart1/relver/internal/release"
	"github.com/raveheart1/relver/internal/semver"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// DefaultPushTimeout bounds push operations to prevent indefinite hangs.
const DefaultPushTimeout = 60 * time.Second

// Repo wraps a git repository opened for release operations.
type Repo struct {
	repo *git.Repository

	// TagPrefix is stripped from tag names before version parsing and
	// prepended when creating tags (typically "v").
	TagPrefix string
	// TaggerName and TaggerEmail identify the tagger on annotated tags
	// when the repository config doesn't supply one.
	TaggerName  string
	TaggerEmail string
}

// Open opens the repository at path, or the current working directory when
// path is empty. DetectDotGit traverses up to find the repository root.
func Open(path, tagPrefix string) (*Repo, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repo{
		repo:        repo,
		TagPrefix:   tagPrefix,
		TaggerName:  "relver",
		TaggerEmail: "relver@localhost",
	}, nil
}

// Root returns the absolute path of the repository worktree root.
func (r *Repo) Root() (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// GitDir returns the path of the .git directory, used by the watch command.
func (r *Repo) GitDir() (string, error) {
	root, err := r.Root()
	if err != nil {
		return "", err
	}
	return root + string(os.PathSeparator) + git.GitDirName, nil
}

// CurrentBranch returns the current branch name, or "" in detached HEAD.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		logDebug("[git] CurrentBranch: detached HEAD state")
		return "", nil
	}
	return head.Name().Short(), nil
}

// VersionTags lists the tags that look like version markers: names carrying
// the configured prefix followed by a leading digit. Partial versions are
// zero-filled and flagged as not clean; non-version tags are skipped.
func (r *Repo) VersionTags(ctx context.Context) ([]release.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []release.Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		rest, ok := strings.CutPrefix(name, r.TagPrefix)
		if !ok || rest == "" {
			return nil
		}
		if !unicode.IsDigit(rune(rest[0])) {
			return nil
		}

		v, strictErr := semver.ParseStrict(rest)
		clean := strictErr == nil
		if !clean {
			v = semver.Parse(rest)
		}
		tags = append(tags, release.Tag{Name: name, Version: v, Clean: clean})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] VersionTags: found %d version tags", len(tags))
	return tags, nil
}

// CommitSubjectsSince returns the subject lines of commits after the given
// tag, oldest first. An empty tag name walks the entire history. Annotated
// tags are peeled to their target commit before the boundary check.
func (r *Repo) CommitSubjectsSince(ctx context.Context, tag string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var boundary plumbing.Hash
	if tag != "" {
		hash, err := r.repo.ResolveRevision(plumbing.Revision(tag))
		if err != nil {
			return nil, fmt.Errorf("resolving tag %q: %w", tag, err)
		}
		boundary = *hash
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	var subjects []string
	err = iter.ForEach(func(c *object.Commit) error {
		if tag != "" && c.Hash == boundary {
			return storer.ErrStop
		}
		subjects = append(subjects, subjectLine(c.Message))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	// Log walks newest-first; the changelog wants oldest-first.
	for i, j := 0, len(subjects)-1; i < j; i, j = i+1, j-1 {
		subjects[i], subjects[j] = subjects[j], subjects[i]
	}

	logDebug("[git] CommitSubjectsSince(%q): %d commits", tag, len(subjects))
	return subjects, nil
}

// subjectLine extracts the first line of a commit message.
func subjectLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}

// CreateVersionTag creates an annotated tag for v at HEAD and returns the
// tag name. Fails if the tag already exists.
func (r *Repo) CreateVersionTag(v semver.Version, message string) (string, error) {
	name := v.TagName(r.TagPrefix)

	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	if message == "" {
		message = "Release " + name
	}

	_, err = r.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  r.tagger(),
		Message: message,
	})
	if err != nil {
		return "", fmt.Errorf("creating tag %q: %w", name, err)
	}

	logDebug("[git] CreateVersionTag: created %s at %s", name, head.Hash())
	return name, nil
}

// tagger builds the signature for annotated tags, preferring the repository
// user config over the built-in identity.
func (r *Repo) tagger() *object.Signature {
	name, email := r.TaggerName, r.TaggerEmail
	if cfg, err := r.repo.ConfigScoped(config.GlobalScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

// PushTags pushes all tags to the named remote. "already up-to-date" is not
// an error. The context bounds the network operation.
func (r *Repo) PushTags(ctx context.Context, remote string) error {
	return r.push(ctx, remote, config.RefSpec("refs/tags/*:refs/tags/*"))
}

// PushBranch pushes the current branch to the named remote. Returns an
// error in detached HEAD state.
func (r *Repo) PushBranch(ctx context.Context, remote string) error {
	branch, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	if branch == "" {
		return fmt.Errorf("cannot push branch: detached HEAD")
	}
	spec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	return r.push(ctx, remote, spec)
}

func (r *Repo) push(ctx context.Context, remote string, spec config.RefSpec) error {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return fmt.Errorf("looking up remote %q: %w", remote, err)
	}

	var auth transport.AuthMethod
	if urls := rem.Config().URLs; len(urls) > 0 {
		auth = getAuthForURL(urls[0])
	}

	logDebug("[git] pushing %s to remote %q", spec, remote)
	err = r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       auth,
	})
	if err == git.NoErrAlreadyUpToDate {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pushing to remote %q: %w", remote, err)
	}
	return nil
}

// getAuthForURL returns the appropriate authentication method for a remote
// URL. SSH URLs use SSH agent auth, HTTPS URLs use environment credentials.
func getAuthForURL(url string) transport.AuthMethod {
	if isSSHURL(url) {
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			logDebug("[git] SSH agent auth failed: %v", err)
			return nil
		}
		return auth
	}

	username := os.Getenv("GIT_USERNAME")
	password := os.Getenv("GIT_PASSWORD")
	if username == "" {
		username = os.Getenv("GITHUB_TOKEN")
		if username != "" {
			password = "" // GitHub token can be used as username with empty password
		}
	}

	if username != "" {
		return &http.BasicAuth{
			Username: username,
			Password: password,
		}
	}

	return nil
}

// isSSHURL checks if a URL is an SSH URL.
// Detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}
