//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Digest builds the CLI and regenerates arxiv.html in the repository root.
// This is what the scheduled CI job runs.
func Digest() error {
	mg.Deps(Build)
	fmt.Println("[digest] Fetching latest arXiv papers and rendering arxiv.html.")
	return sh.RunV(filepath.Join(binDir, binName))
}
