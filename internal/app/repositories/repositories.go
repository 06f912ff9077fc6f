package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	OpportunityRepository        *OpportunityRepository
	ApplicationRepository        *ApplicationRepository
	FavoriteRepository           *FavoriteRepository
	CommunityRepository          *CommunityRepository
	PostRepository               *PostRepository
	MessageRepository            *MessageRepository
	ReportRepository             *ReportRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	EmailChangeTokenRepository   *EmailChangeTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		OpportunityRepository:        NewOpportunityRepository(db),
		ApplicationRepository:        NewApplicationRepository(db),
		FavoriteRepository:           NewFavoriteRepository(db),
		CommunityRepository:          NewCommunityRepository(db),
		PostRepository:               NewPostRepository(db),
		MessageRepository:            NewMessageRepository(db),
		ReportRepository:             NewReportRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		EmailChangeTokenRepository:   NewEmailChangeTokenRepository(db),
	}
}
