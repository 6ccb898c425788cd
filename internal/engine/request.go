package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ValidationMessage is the user-facing text for any Validate failure.
const ValidationMessage = "Please select a valid folder and enter a search word."

var (
	ErrEmptyTerm    = errors.New("search term is empty")
	ErrRootNotFound = errors.New("folder does not exist")
	ErrRootNotDir   = errors.New("path is not a folder")
)

// Request is the input of one scan.
type Request struct {
	Root string
	Term string
}

// Validate checks the preconditions Start relies on: Term is not blank and
// Root is an existing directory.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Term) == "" {
		return ErrEmptyTerm
	}
	if strings.TrimSpace(r.Root) == "" {
		return ErrRootNotFound
	}
	st, err := os.Stat(r.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, r.Root)
		}
		return fmt.Errorf("stat %s: %w", r.Root, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDir, r.Root)
	}
	return nil
}
