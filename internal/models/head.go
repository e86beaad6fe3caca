package models

// HeadState represents the current HEAD position
type HeadState struct {
	Hash       string // Checked-out commit hash
	BranchName string // Empty if detached HEAD
	IsDetached bool   // True if not on a branch
}
