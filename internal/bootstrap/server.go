package bootstrap

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	appauth "github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/auth"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/importer"
	apppost "github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/post"
	appuser "github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/user"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/config"
	infrafile "github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/file"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/mail"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/progress"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/queue"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/repository"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/token"
	httpecho "github.com/Saw-Kyaw-Myint/bulletin-board/internal/interfaces/http/echo"
)

// NewHTTPServer assembles the API process: repositories on top of the shared
// connections, use cases on top of those, handlers on top of the use cases.
func NewHTTPServer(cfg config.Config, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, log *logrus.Logger) (*echo.Echo, error) {
	server := echo.New()
	server.HideBanner = true
	server.Validator = httpecho.NewRequestValidator()

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("10M"))
	server.Use(middleware.CORS())

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	passwordResetRepo := repository.NewPasswordResetRepository(db)

	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	hasher := token.NewBcryptHasher()
	mailer := mail.NewResetMailer(mail.SMTPConfig{
		Host:         cfg.MailHost,
		Port:         cfg.MailPort,
		Username:     cfg.MailUsername,
		Password:     cfg.MailPassword,
		From:         cfg.MailFrom,
		ResetURLBase: cfg.ResetURLBase,
	})

	uploadStorage, err := infrafile.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}
	profileStorage, err := infrafile.NewLocalStorage(cfg.ProfileImageDir)
	if err != nil {
		return nil, fmt.Errorf("init profile storage: %w", err)
	}

	progressStore := progress.NewRedisStore(redisClient, cfg.ProgressTTL)

	ttls := appauth.TokenTTLs{Refresh: cfg.RefreshTokenTTL, RememberMe: cfg.RememberMeTTL}
	authHandler := httpecho.NewAuthHandler(
		appauth.NewLogin(userRepo, refreshTokenRepo, hasher, issuer, ttls),
		appauth.NewRefresh(userRepo, refreshTokenRepo, issuer, ttls),
		appauth.NewLogout(refreshTokenRepo),
		appauth.NewForgotPassword(userRepo, passwordResetRepo, mailer, log),
		appauth.NewResetPassword(userRepo, passwordResetRepo, refreshTokenRepo, hasher, cfg.PasswordResetTokenTTL),
	)

	userHandler := httpecho.NewUserHandler(
		appuser.NewListUsers(userRepo),
		appuser.NewGetUser(userRepo),
		appuser.NewCreateUser(userRepo, hasher, profileStorage),
		appuser.NewUpdateUser(userRepo),
		appuser.NewDeleteUsers(userRepo),
		appuser.NewLockUsers(userRepo),
		appuser.NewUnlockUsers(userRepo),
	)

	postHandler := httpecho.NewPostHandler(
		apppost.NewListPosts(postRepo),
		apppost.NewGetPost(postRepo),
		apppost.NewCreatePost(postRepo),
		apppost.NewUpdatePost(postRepo),
		apppost.NewDeletePosts(postRepo),
		apppost.NewExportPosts(postRepo),
	)

	importHandler := httpecho.NewImportHandler(
		importer.NewStartImport(uploadStorage, queueClient, cfg.MaxCSVSize),
		importer.NewGetImportProgress(progressStore),
	)

	httpecho.RegisterRoutes(server, issuer, authHandler, userHandler, postHandler, importHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server, nil
}
