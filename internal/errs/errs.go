package errs

import "errors"

var (
	ErrInvalidBranch = errors.New("branch name must not be empty, start with a dash, or contain whitespace or control characters")
	ErrUpdateFailed  = errors.New("update failed. Download the latest release manually from https://github.com/taneba/rome/releases")
)
