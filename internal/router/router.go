package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"jobportal/internal/auth"
	"jobportal/internal/config"
	"jobportal/internal/errors"
	"jobportal/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	jobHandler *handler.JobHandler,
	applicationHandler *handler.ApplicationHandler,
	resumeHandler *handler.ResumeHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/user/register", authHandler.Register)
	api.GET("/user/verify/:token", authHandler.Verify)
	api.POST("/user/login", authHandler.Login)
	api.POST("/user/refresh", authHandler.Refresh)
	api.POST("/user/logout", authHandler.Logout)
	api.POST("/user/password/forgot", authHandler.ForgotPassword)
	api.PUT("/user/password/reset/:token", authHandler.ResetPassword)

	api.GET("/job/getall", jobHandler.GetAll)
	api.GET("/job/count", jobHandler.Count)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:Authorization:Bearer ,cookie:token",
	}), actorMiddleware(jwtService, tokenStore))

	secured.GET("/user/getuser", userHandler.GetUser)
	secured.PUT("/user/profile", userHandler.UpdateProfile)
	secured.PUT("/user/preferences", userHandler.UpdatePreferences)
	secured.GET("/user/count", userHandler.Count)

	secured.GET("/job/recommended", jobHandler.Recommended)
	secured.POST("/job/post", jobHandler.Post)
	secured.GET("/job/getmyjobs", jobHandler.MyJobs)
	secured.PUT("/job/update/:id", jobHandler.Update)
	secured.DELETE("/job/delete/:id", jobHandler.Delete)
	secured.GET("/job/:id", jobHandler.Get)

	secured.POST("/application/post", applicationHandler.Post)
	secured.GET("/application/employer/getall", applicationHandler.EmployerGetAll)
	secured.GET("/application/jobseeker/getall", applicationHandler.SeekerGetAll)
	secured.DELETE("/application/delete/:id", applicationHandler.SeekerDelete)
	secured.DELETE("/application/employer/delete/:id", applicationHandler.EmployerDelete)
	secured.PUT("/application/update/:id", applicationHandler.UpdateStatus)

	secured.POST("/resume/analyze", resumeHandler.Analyze)
}

// actorMiddleware turns validated token claims into the request actor that
// handlers pass explicitly into services. Tokens blacklisted at logout are
// rejected even though their signature still verifies.
func actorMiddleware(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, errors.Fail("not authenticated"))
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errors.Fail("JWT is invalid, try again!"))
			}

			if claims.ID != "" {
				blacklisted, err := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if err == nil && blacklisted {
					return c.JSON(http.StatusUnauthorized, errors.Fail("JWT is invalid, try again!"))
				}
			}

			handler.SetActor(c, claims.Actor())
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie.Value
	}
	return ""
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
