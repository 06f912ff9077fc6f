package services

import (
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/pkg/auth"
	"github.com/ladderhq/ladder/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService        *AuthService
	UserService        *UserService
	OpportunityService *OpportunityService
	ApplicationService *ApplicationService
	FavoriteService    *FavoriteService
	CommunityService   *CommunityService
	PostService        *PostService
	MessageService     *MessageService
	ReportService      *ReportService
	SearchService      *SearchService
	AdminService       *AdminService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, emailSender email.Sender, baseURL string) *Services {
	return &Services{
		AuthService:        NewAuthService(repos, jwtService, emailSender, baseURL),
		UserService:        NewUserService(repos),
		OpportunityService: NewOpportunityService(repos),
		ApplicationService: NewApplicationService(repos),
		FavoriteService:    NewFavoriteService(repos),
		CommunityService:   NewCommunityService(repos),
		PostService:        NewPostService(repos),
		MessageService:     NewMessageService(repos),
		ReportService:      NewReportService(repos),
		SearchService:      NewSearchService(repos),
		AdminService:       NewAdminService(repos),
	}
}
