package setup

import (
	"github.com/crier-dev/crier/internal/config"
	"github.com/crier-dev/crier/internal/handler"
	"github.com/crier-dev/crier/internal/jwt"
	"github.com/crier-dev/crier/internal/middleware"
	"github.com/crier-dev/crier/internal/push"
	"github.com/crier-dev/crier/internal/service"
	"github.com/crier-dev/crier/internal/storage/pg"
	"github.com/crier-dev/crier/internal/utils"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	Notifier       *service.Notifier
	Purger         *service.Purger
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	transport := push.New(cfg.Public.VapidPublicKey, cfg.VapidPrivateKey(), cfg.VapidEmail())
	notifier := service.NewNotifier(storage, transport)

	auth := service.NewAuth(storage, jwtService, &utils.CredentialsValidator{}, cfg.Public.AdminUsernames)
	board := service.NewBoard(storage, &utils.BoardValidator{}, cfg.Public.BoardsPerPage)
	post := service.NewPost(storage, &utils.PostValidator{})
	comment := service.NewComment(storage, &utils.CommentValidator{})
	vote := service.NewVote(storage, notifier)
	pushSvc := service.NewPush(storage, cfg.Public.VapidPublicKey)
	purger := service.NewPurger(storage, cfg.Public.PurgeAfterDays)

	h := handler.New(auth, board, post, comment, vote, pushSvc, notifier, purger, storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		Notifier:       notifier,
		Purger:         purger,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Config:         cfg,
	}, nil
}
