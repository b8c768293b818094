package main

import (
	"fmt"
	"log"
	"os"

	"gestion-salon-backend/config"
	"gestion-salon-backend/controllers"
	"gestion-salon-backend/models"
	"gestion-salon-backend/routes"
	"gestion-salon-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Product{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Payment{},
		&models.Sale{},
		&models.SaleItem{},
		&models.NotificationLog{},
	)
}

func main() {
	notifier := services.NewNotifierService(config.DB)
	notifier.StartScheduler()
	controllers.SetNotifier(notifier)
	controllers.SetSlotClient(services.NewSlotClient())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
