package vcs

import "fmt"

// Unimplemented is a VCS whose queries all fail with ErrUnimplemented. Future
// backends embed it so they satisfy the interface before every operation is
// written:
//
//	type Hg struct {
//	    vcs.Unimplemented
//	    Root string
//	}
type Unimplemented struct{}

func (Unimplemented) Type() Type    { return "" }
func (Unimplemented) Label() string { return "unknown VCS" }

func (Unimplemented) DefaultBranch() (string, error) {
	return "", fmt.Errorf("%w: DefaultBranch", ErrUnimplemented)
}

func (Unimplemented) ModifiedFiles(string) ([]string, error) {
	return nil, fmt.Errorf("%w: ModifiedFiles", ErrUnimplemented)
}

func (Unimplemented) UncommittedFiles() ([]string, error) {
	return nil, fmt.Errorf("%w: UncommittedFiles", ErrUnimplemented)
}
