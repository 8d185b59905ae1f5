package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relver/internal/semver"
)

// testRepo builds a throwaway repository on disk for collaborator tests.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	seq  int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) commit(subject string) {
	r.t.Helper()
	r.seq++

	name := filepath.Join(r.dir, "file.txt")
	require.NoError(r.t, os.WriteFile(name, []byte(subject+"\n"), 0o644))

	_, err := r.wt.Add("file.txt")
	require.NoError(r.t, err)

	_, err = r.wt.Commit(subject, &gogit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(r.t, err)
}

func (r *testRepo) tag(name string) {
	r.t.Helper()

	head, err := r.repo.Head()
	require.NoError(r.t, err)

	_, err = r.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
		Message: "tag " + name,
	})
	require.NoError(r.t, err)
}

func (r *testRepo) open() *Repo {
	r.t.Helper()
	repo, err := Open(r.dir, "v")
	require.NoError(r.t, err)
	return repo
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir(), "v")
	require.Error(t, err)
}

func TestRepo_VersionTags(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("initial commit")
	tr.tag("v0.1.0")
	tr.commit("fix: something")
	tr.tag("v0.2.0")
	tr.tag("v1.2")          // partial, kept but not clean
	tr.tag("nightly")       // no prefix match
	tr.tag("vNext")         // prefix but no digit
	tr.tag("release-0.9.0") // foreign prefix

	tags, err := tr.open().VersionTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 3)

	byName := map[string]struct {
		version semver.Version
		clean   bool
	}{}
	for _, tag := range tags {
		byName[tag.Name] = struct {
			version semver.Version
			clean   bool
		}{tag.Version, tag.Clean}
	}

	assert.Equal(t, semver.Version{Minor: 1}, byName["v0.1.0"].version)
	assert.True(t, byName["v0.1.0"].clean)
	assert.Equal(t, semver.Version{Minor: 2}, byName["v0.2.0"].version)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2}, byName["v1.2"].version)
	assert.False(t, byName["v1.2"].clean)
}

func TestRepo_VersionTags_CustomPrefix(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("initial commit")
	tr.tag("release-1.0.0")
	tr.tag("v2.0.0")

	repo, err := Open(tr.dir, "release-")
	require.NoError(t, err)

	tags, err := repo.VersionTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "release-1.0.0", tags[0].Name)
	assert.Equal(t, semver.Version{Major: 1}, tags[0].Version)
}

func TestRepo_CommitSubjectsSince(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("initial commit")
	tr.tag("v0.1.0")
	tr.commit("fix: pager off-by-one")
	tr.commit("feat: watch mode")

	repo := tr.open()

	t.Run("since tag, oldest first", func(t *testing.T) {
		subjects, err := repo.CommitSubjectsSince(context.Background(), "v0.1.0")
		require.NoError(t, err)
		assert.Equal(t, []string{"fix: pager off-by-one", "feat: watch mode"}, subjects)
	})

	t.Run("entire history when no tag", func(t *testing.T) {
		subjects, err := repo.CommitSubjectsSince(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"initial commit", "fix: pager off-by-one", "feat: watch mode"}, subjects)
	})

	t.Run("unknown tag errors", func(t *testing.T) {
		_, err := repo.CommitSubjectsSince(context.Background(), "v9.9.9")
		require.Error(t, err)
	})
}

func TestRepo_CommitSubjectsSince_SubjectOnly(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("feat: add exporter\n\nlong body describing the exporter\nwith details")

	subjects, err := tr.open().CommitSubjectsSince(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"feat: add exporter"}, subjects)
}

func TestRepo_CreateVersionTag(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("initial commit")

	repo := tr.open()
	name, err := repo.CreateVersionTag(semver.Version{Minor: 1}, "")
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0", name)

	tags, err := repo.VersionTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "v0.1.0", tags[0].Name)

	t.Run("duplicate tag fails", func(t *testing.T) {
		_, err := repo.CreateVersionTag(semver.Version{Minor: 1}, "")
		require.Error(t, err)
	})
}

func TestRepo_CurrentBranch(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("initial commit")

	branch, err := tr.open().CurrentBranch()
	require.NoError(t, err)
	assert.NotEmpty(t, branch)
}

func TestRepo_GitDir(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("initial commit")

	gitDir, err := tr.open().GitDir()
	require.NoError(t, err)
	assert.DirExists(t, gitDir)
}

func TestIsSSHURL(t *testing.T) {
	assert.True(t, isSSHURL("git@github.com:owner/repo.git"))
	assert.True(t, isSSHURL("ssh://git@github.com/owner/repo.git"))
	assert.True(t, isSSHURL("git+ssh://git@github.com/owner/repo.git"))
	assert.False(t, isSSHURL("https://github.com/owner/repo.git"))
}
