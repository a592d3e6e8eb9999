package domain

import "context"

// ServicePort defines the directory service interface
type ServicePort interface {
	UpsertInstallation(ctx context.Context, in Installation) error
	ListUsers(ctx context.Context, in ListUsersInput) ([]User, error)
	SyncUsers(ctx context.Context, siteID string) (SyncReport, error)

	// LookupByName and TeamFor back the boosts engine's recipient
	// resolution; a name matching zero or several users reports ok=false
	LookupByName(ctx context.Context, teamID, name string) (accountID string, ok bool, err error)
	TeamFor(ctx context.Context, siteID string) (string, error)
}

// UserSource pages through the platform's user directory
type UserSource interface {
	SearchUsers(ctx context.Context, query string, startAt, maxResults int) ([]SourceUser, error)
}

// SourceUser is one upstream directory entry prior to filtering
type SourceUser struct {
	AccountID   string
	AccountType string
	DisplayName string
	Email       string
	Active      bool
}
