package routes

import (
	"time"

	"formflow/api/handler"
	"formflow/api/middleware"
	"formflow/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Questions      *handler.QuestionHandler
	Formulaires    *handler.FormulaireHandler
	Reviews        *handler.ReviewHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	users *handler.UserHandler,
	questions *handler.QuestionHandler,
	formulaires *handler.FormulaireHandler,
	reviews *handler.ReviewHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Users:          users,
		Questions:      questions,
		Formulaires:    formulaires,
		Reviews:        reviews,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/user/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/user/auth", r.Auth.Authenticate, r.LoginRate.Middleware())
	e.POST("/user/forgot-password", r.Auth.ForgotPassword, r.LoginRate.Middleware())
	e.POST("/user/verify-code", r.Auth.VerifyCode, r.AuthRate.Middleware())
	e.POST("/user/reset-password", r.Auth.ResetPassword, r.AuthRate.Middleware())

	e.GET("/user/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)
	e.PUT("/user/profile", r.Auth.UpdateProfile, r.AuthMiddleware.RequireAuth)

	adminOnly := []echo.MiddlewareFunc{r.AuthMiddleware.RequireAuth, middleware.RequireRoles(entity.RoleAdmin)}
	anyRole := []echo.MiddlewareFunc{r.AuthMiddleware.RequireAuth, middleware.RequireRoles()}
	clientOnly := []echo.MiddlewareFunc{r.AuthMiddleware.RequireAuth, middleware.RequireRoles(entity.RoleClient)}
	reviewerOnly := []echo.MiddlewareFunc{r.AuthMiddleware.RequireAuth, middleware.RequireRoles(entity.RoleFournisseur, entity.RoleAdmin)}

	e.GET("/user", r.Users.List, adminOnly...)
	e.POST("/user", r.Users.Create, adminOnly...)
	e.GET("/user/:id", r.Users.Get, adminOnly...)
	e.PUT("/user/:id", r.Users.Update, adminOnly...)
	e.DELETE("/user/:id", r.Users.Delete, adminOnly...)
	e.PUT("/user/:id/password", r.Users.SetPassword, adminOnly...)

	e.GET("/api/questions", r.Questions.List, anyRole...)
	e.GET("/api/questions/search", r.Questions.Search, anyRole...)
	e.GET("/api/questions/:id", r.Questions.Get, anyRole...)
	e.POST("/api/questions", r.Questions.Create, adminOnly...)
	e.PUT("/api/questions/:id", r.Questions.Update, adminOnly...)
	e.DELETE("/api/questions/:id", r.Questions.Delete, adminOnly...)

	e.GET("/api/formulaires", r.Formulaires.List, anyRole...)
	e.GET("/api/formulaires/:id", r.Formulaires.Get, anyRole...)
	e.POST("/api/formulaires", r.Formulaires.Create, adminOnly...)
	e.PUT("/api/formulaires/:id", r.Formulaires.Update, adminOnly...)
	e.DELETE("/api/formulaires/:id", r.Formulaires.Delete, adminOnly...)
	e.GET("/api/formulaires/:id/questions", r.Formulaires.GetMembership, anyRole...)
	e.PUT("/api/formulaires/:id/questions", r.Formulaires.ReplaceMembership, adminOnly...)

	e.POST("/api/formulaires/:id/submit", r.Formulaires.Submit, clientOnly...)
	e.GET("/api/formulaires/:id/responses/me", r.Formulaires.MyAnswers, clientOnly...)

	e.GET("/api/reponse-fournisseur/reviews", r.Reviews.ListReviews, reviewerOnly...)
	e.POST("/api/reponse-fournisseur/upsert", r.Reviews.UpsertOne, reviewerOnly...)
	e.POST("/api/reponse-fournisseur/upsert-batch", r.Reviews.UpsertBatch, reviewerOnly...)
}
