package routes

import (
	"gestion-salon-backend/config"
	"gestion-salon-backend/controllers"
	"gestion-salon-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://console.gestion-salon.app",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return origin == "https://console.gestion-salon.app" ||
				origin == "http://localhost:3000"
		},
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public booking surface. No auth: identity is the client's phone
	// number, receipts are token-authenticated.
	rdv := r.Group("/rendez-vous")
	{
		rdv.POST("/public", controllers.PublicCreateAppointment)
		rdv.POST("/mes-rendez-vous", controllers.MyAppointments)
		rdv.POST("/:id/cancel-public", controllers.PublicCancelAppointment)
		rdv.GET("/available-slots", controllers.GetAvailableSlots)
		rdv.GET("/:id/recu-acompte", controllers.GetDepositReceipt)
		rdv.GET("/:id/recu-final", controllers.GetFinalReceipt)

		rdv.Use(utils.AuthMiddleware())

		rdv.POST("", controllers.CreateAppointment)
		rdv.GET("", controllers.GetAppointments)
		rdv.GET("/:id", controllers.GetAppointment)
		rdv.PUT("/:id", controllers.UpdateAppointment)
		rdv.DELETE("/:id", controllers.DeleteAppointment)

		// State machine transitions
		rdv.POST("/:id/confirm", controllers.ConfirmAppointment)
		rdv.POST("/:id/cancel", controllers.CancelAppointment)
		rdv.POST("/:id/complete", controllers.CompleteAppointment)
		rdv.PATCH("/:id/marquer-en-cours", controllers.MarkInProgress)
		rdv.POST("/:id/no-show", controllers.MarkNoShow)

		// Deposit management
		rdv.PATCH("/:id/acompte", controllers.UpdateDepositAmount)
		rdv.POST("/:id/marquer-acompte-paye", controllers.MarkDepositPaid)
		rdv.POST("/:id/payer-acompte", controllers.PayDeposit)

		// Finalization
		rdv.POST("/:id/finaliser", controllers.FinalizeAppointment)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Product routes
		produits := api.Group("/produits")
		{
			produits.POST("", controllers.CreateProduct)
			produits.GET("", controllers.GetProducts)
			produits.GET("/:id", controllers.GetProduct)
			produits.PUT("/:id", controllers.UpdateProduct)
			produits.DELETE("/:id", controllers.DeleteProduct)
		}

		// Sales are read-only, created by finalization
		ventes := api.Group("/ventes")
		{
			ventes.GET("", controllers.GetSales)
			ventes.GET("/:id", controllers.GetSale)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetSalonProfile)
			profile.PUT("", controllers.UpdateSalonProfile)
		}
	}

	return r
}
