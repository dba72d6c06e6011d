package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"formflow/api/handler"
	apiMiddleware "formflow/api/middleware"
	"formflow/api/routes"
	"formflow/config"
	"formflow/internal/repository"
	"formflow/internal/service"
	"formflow/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	db := config.ConnectionDb()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := config.Migrate(db); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	accessSecret := []byte(os.Getenv("JWT_SECRET"))
	issuer := os.Getenv("JWT_ISSUER")
	if len(accessSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	accessManager := utils.JWTManager{
		Secret:         accessSecret,
		Issuer:         issuer,
		AccessTokenTTL: 24 * time.Hour,
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}

	userRepo := repository.NewUserRepository(db)
	resetCodeRepo := repository.NewResetCodeRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	formulaireRepo := repository.NewFormulaireRepository(db)
	reponseClientRepo := repository.NewReponseClientRepository(db)
	reponseFournisseurRepo := repository.NewReponseFournisseurRepository(db)
	securityRepo := repository.NewSecurityLogRepository(db)

	passwordHasher := service.BcryptPasswordHasher{}
	clock := service.RealClock{}

	emailSender := service.NewResendEmailSender(
		os.Getenv("RESEND_API_KEY"),
		os.Getenv("EMAIL_FROM"),
		os.Getenv("APP_BASE_URL"),
	)

	authService := service.NewAuthService(userRepo, securityRepo, passwordHasher, accessIssuer, clock)
	resetService := service.NewPasswordResetService(userRepo, resetCodeRepo, securityRepo, emailSender, passwordHasher, clock, 15*time.Minute)
	userService := service.NewUserService(userRepo, passwordHasher)
	catalogService := service.NewCatalogService(questionRepo, formulaireRepo)
	submissionService := service.NewSubmissionService(formulaireRepo, reponseClientRepo, clock)
	reviewService := service.NewReviewService(formulaireRepo, reponseClientRepo, reponseFournisseurRepo, clock)

	if os.Getenv("SEED_USERS") != "false" {
		if err := userService.EnsureDefaultUsers(context.Background()); err != nil {
			logger.WithError(err).Fatal("seeding default users failed")
		}
	}

	authHandler := handler.NewAuthHandler(authService, resetService, userService, validate)
	userHandler := handler.NewUserHandler(userService, validate)
	questionHandler := handler.NewQuestionHandler(catalogService, validate)
	formulaireHandler := handler.NewFormulaireHandler(catalogService, submissionService, validate)
	reviewHandler := handler.NewReviewHandler(reviewService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &accessManager}
	router := routes.NewRouter(app, authHandler, userHandler, questionHandler, formulaireHandler, reviewHandler, authMiddleware)
	router.RegisterRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
