// Package domain defines shared types for the user directory
package domain

import "time"

// Installation maps one platform site to the team that owns it
type Installation struct {
	SiteID      string    `json:"site_id"      validate:"required,max=128"`
	TeamID      string    `json:"team_id"      validate:"required,max=128"`
	BaseURL     string    `json:"base_url"     validate:"omitempty,url,max=512"`
	InstalledAt time.Time `json:"installed_at"`
}

// User is one synced directory entry
type User struct {
	AccountID   string    `json:"account_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	AccountType string    `json:"account_type"`
	Active      bool      `json:"active"`
	SyncedAt    time.Time `json:"synced_at"`
}

// ListUsersInput filters the users listing
type ListUsersInput struct {
	TeamID string `json:"team_id" validate:"required,max=128"`
	Query  string `json:"query,omitempty" validate:"omitempty,max=256"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
}

// SyncReport summarizes one directory sync run
type SyncReport struct {
	RunID   string `json:"run_id"`
	SiteID  string `json:"site_id"`
	TeamID  string `json:"team_id"`
	Fetched int    `json:"fetched"`
	Stored  int    `json:"stored"`
	Skipped int    `json:"skipped"`
}
