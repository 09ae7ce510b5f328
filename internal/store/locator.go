package store

import (
	"fmt"
	"path/filepath"
)

// Locator maps scopes to SQLite database files. The repository never builds
// paths itself, so deployments can relocate stores by swapping the locator.
type Locator interface {
	// GlobalPath locates the single store shared by every caller.
	GlobalPath() string
	// OrgPath locates the private store of one organization.
	OrgPath(orgID int64) string
}

// FilesystemLocator lays stores out under one data root:
//
//	<root>/global/assistants.db
//	<root>/org_<id>/assistants.db
//
// Open creates the directories on first use.
type FilesystemLocator struct {
	Root string
}

// GlobalPath implements Locator.
func (l FilesystemLocator) GlobalPath() string {
	return filepath.Join(l.Root, "global", "assistants.db")
}

// OrgPath implements Locator.
func (l FilesystemLocator) OrgPath(orgID int64) string {
	return filepath.Join(l.Root, fmt.Sprintf("org_%d", orgID), "assistants.db")
}
