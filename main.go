// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medirec/clinic-backend/config"
	"github.com/medirec/clinic-backend/endpoint"
	"github.com/medirec/clinic-backend/middleware"
	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels...); err != nil {
		log.Fatalf("error migrating schema: %v", err)
	}

	// Redis is optional: sessions fall back to the database and the rate
	// limiter allows traffic when the cache is absent.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("redis unavailable, continuing without cache: %v", err)
	}

	util.SetAuditDB(db)
	util.InitStaffEmailCacheFromEnv()

	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	router.POST("/login", middleware.RateLimiter(middleware.RateLimitConfig{
		Limit:  5,
		Window: 15 * time.Minute,
	}), endpoint.Login)
	router.GET("/token/validate", endpoint.ValidateToken)

	router.GET("/patient", endpoint.ListPatients)
	router.POST("/patient", endpoint.CreatePatient)
	router.GET("/staff", endpoint.ListStaff)
	router.POST("/staff", endpoint.CreateStaff)
	router.GET("/medicine", endpoint.ListMedicines)
	router.GET("/stock", endpoint.ListStock)

	// Checkup and stock mutations require an authenticated session.
	authed := router.Group("/", middleware.AuthRequired())
	authed.DELETE("/logout", endpoint.Logout)
	authed.POST("/medicine", endpoint.CreateMedicine)
	authed.POST("/stock", endpoint.AddStock)
	authed.PATCH("/staff/:id/password", middleware.RequireRoles(model.RoleAdmin), endpoint.UpdateStaffPassword)
	authed.GET("/checkup", endpoint.ListCheckups)
	authed.GET("/checkup/:id", endpoint.GetCheckupDetails)
	authed.POST("/checkup", endpoint.CreateCheckup)
	authed.DELETE("/checkup/:id", middleware.RequireRoles(model.RoleAdmin, model.RoleDoctor), endpoint.DeleteCheckup)

	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
