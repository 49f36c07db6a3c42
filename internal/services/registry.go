package services

import (
	"time"

	"jobhub_backend/internal/config"
	"jobhub_backend/internal/events"
	"jobhub_backend/internal/repositories"

	"github.com/redis/go-redis/v9"
)

// ServiceContainer wires every service with its repositories once at
// startup. Handlers depend on this container only.
type ServiceContainer struct {
	Auth        AuthService
	Job         JobService
	Application ApplicationService
	Review      ReviewService
	Dashboard   DashboardService
}

type Repositories struct {
	User         repositories.UserRepository
	Profile      repositories.ProfileRepository
	Job          repositories.JobRepository
	Application  repositories.ApplicationRepository
	Review       repositories.ReviewRepository
	Payment      repositories.PaymentRepository
	Subscription repositories.SubscriptionRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		User:         repositories.NewUserRepository(),
		Profile:      repositories.NewProfileRepository(),
		Job:          repositories.NewJobRepository(),
		Application:  repositories.NewApplicationRepository(),
		Review:       repositories.NewReviewRepository(),
		Payment:      repositories.NewPaymentRepository(),
		Subscription: repositories.NewSubscriptionRepository(),
	}
}

func NewServiceContainer(cfg *config.Config, repos *Repositories, publisher events.Publisher, redisClient *redis.Client) *ServiceContainer {
	editableWindow := time.Duration(cfg.Review.EditableWindowDays) * 24 * time.Hour
	cacheTTL := time.Duration(cfg.Dashboard.CacheTTLSeconds) * time.Second

	return &ServiceContainer{
		Auth:        NewAuthService(repos.User, repos.Profile, cfg),
		Job:         NewJobService(repos.Job),
		Application: NewApplicationService(repos.Application, repos.Job),
		Review:      NewReviewService(repos.Review, repos.User, repos.Application, repos.Profile, publisher, editableWindow),
		Dashboard:   NewDashboardService(repos.Application, repos.Review, repos.Job, repos.Payment, repos.Profile, redisClient, cacheTTL),
	}
}
