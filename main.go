// main.go
package main

import (
	"context"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/quangtu2509/FE-BE-THsport-sub001/config"
	"github.com/quangtu2509/FE-BE-THsport-sub001/controllers"
	"github.com/quangtu2509/FE-BE-THsport-sub001/middleware"
	"github.com/quangtu2509/FE-BE-THsport-sub001/routes"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg.Env); err != nil {
		panic(err)
	}
	defer utils.SyncLogger()
	logger := utils.GetLogger()

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)

	// Connect to MongoDB
	client, err := utils.ConnectDB(cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logger.Error("error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := client.Database(cfg.MongoDB)
	if err := utils.EnsureIndexes(db); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	// Initialize EmailService
	emailService := utils.NewEmailService(cfg.SendGridAPIKey, cfg.EmailSender)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware(cfg.Env != "production"))
	router.Use(middleware.LoggingMiddleware)

	routes.RegisterRoutes(router, routes.Controllers{
		User:      controllers.NewUserController(db),
		Product:   controllers.NewProductController(db),
		Brand:     controllers.NewBrandController(db),
		Category:  controllers.NewCategoryController(db),
		Cart:      controllers.NewCartController(db),
		Order:     controllers.NewOrderController(db, emailService),
		Promotion: controllers.NewPromotionController(db),
		Inventory: controllers.NewInventoryController(db),
		Admin:     controllers.NewAdminController(db),
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := http.ListenAndServe(":"+cfg.Port, cors(router)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
