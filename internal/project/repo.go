package project

import (
	git "github.com/go-git/go-git/v5"

	"github.com/codetriage/codetriage/internal/types"
)

// EnrichRepo fills Branch and Remote from the repository containing root.
// Non-repositories and detached or malformed states leave the fields empty.
func EnrichRepo(pc *types.ProjectContext, root string) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return
	}
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		pc.Branch = head.Name().Short()
	}
	if remote, err := repo.Remote(git.DefaultRemoteName); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			pc.Remote = urls[0]
		}
	}
}
