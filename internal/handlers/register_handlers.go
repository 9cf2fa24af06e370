package handlers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/Gabriel4210/DRE/cmd/docs"
	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
	"github.com/Gabriel4210/DRE/internal/dto"
	"github.com/Gabriel4210/DRE/internal/middleware"
	"github.com/Gabriel4210/DRE/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := registerBindingValidators(); err != nil {
		return err
	}

	r.GET("/", getHome(cfg.DataBackend, !cfg.IsProduction))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	// Reads stay public. Writes require a bearer token once a secret is configured.
	var writeGuard []gin.HandlerFunc
	if cfg.JWTSecret != "" {
		writeGuard = append(writeGuard, middleware.AuthMiddleware(cfg.JWTSecret))
	}

	registerTransactionRoutes(v1, services.Transaction, writeGuard...)
	registerReportingRoutes(v1, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// registerBindingValidators adds the DRE tags to gin's validator exactly once per process.
func registerBindingValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		validatorsErr = dto.RegisterValidators(v)
	})
	return validatorsErr
}
