package notes

// FilterOrphans returns the commits that are not subsumed by any of the
// given change requests, preserving the original commit order.
//
// A commit is subsumed when its SHA appears in the commit set of at least
// one merged PR in the same batch; such commits are already represented by
// their PR and would otherwise show up twice in the release notes.
// With no change requests the input is returned unchanged.
func FilterOrphans(commits []Commit, changeRequests []ChangeRequest) []Commit {
	if len(changeRequests) == 0 {
		return commits
	}

	// Union of every PR's commit SHAs
	subsumed := make(map[string]struct{})
	for _, cr := range changeRequests {
		for _, sha := range cr.CommitSHAs {
			subsumed[sha] = struct{}{}
		}
	}

	orphans := make([]Commit, 0, len(commits))
	for _, commit := range commits {
		if _, ok := subsumed[commit.SHA]; ok {
			continue
		}
		orphans = append(orphans, commit)
	}

	return orphans
}
