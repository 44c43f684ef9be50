// Package types provides type definitions for structured data used throughout the issue-scout system.
package types

import (
	"fmt"
	"time"
)

// IssueRef uniquely identifies an issue by repository and number.
type IssueRef struct {
	RepoFullName string `json:"repo_full_name"`
	Number       int    `json:"number"`
}

// String returns the canonical "owner/repo#number" form used as a map/file key.
func (r IssueRef) String() string {
	return fmt.Sprintf("%s#%d", r.RepoFullName, r.Number)
}

// IssueRecord is an immutable snapshot of a GitHub issue as returned by search.
type IssueRecord struct {
	RepoFullName    string    `json:"repo_full_name"`
	Number          int       `json:"number"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	URL             string    `json:"url"`
	Labels          []string  `json:"labels"`
	RepoStars       int       `json:"repo_stars"`
	RepoDescription string    `json:"repo_description,omitempty"`
	CommentsCount   int       `json:"comments_count"`
	Assignees       []string  `json:"assignees,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Ref returns the issue's reference.
func (i *IssueRecord) Ref() IssueRef {
	return IssueRef{RepoFullName: i.RepoFullName, Number: i.Number}
}

// RepoHealth holds repository health metrics fetched alongside an issue.
type RepoHealth struct {
	Stars                int  `json:"stars"`
	Forks                int  `json:"forks"`
	OpenIssues           int  `json:"open_issues"`
	DaysSinceUpdate      int  `json:"days_since_update"`
	HasContributingGuide bool `json:"has_contributing_guide"`
	IsHealthy            bool `json:"is_healthy"`
}
