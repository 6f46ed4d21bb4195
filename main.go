package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jsck45/social-network-api/controllers"
	"github.com/jsck45/social-network-api/database"
	"github.com/jsck45/social-network-api/intializers"
	"github.com/jsck45/social-network-api/logger"
	"github.com/jsck45/social-network-api/routes"
	"github.com/jsck45/social-network-api/services"
	"github.com/jsck45/social-network-api/store"
)

func init() {
	intializers.LoadEnvVariables()
}

func main() {
	if err := logger.Init(intializers.GetEnv("ENV", "development")); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	client, err := database.Connect()
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	userStore := store.NewMongoUserStore(database.OpenCollection(client, "users"))
	thoughtStore := store.NewMongoThoughtStore(database.OpenCollection(client, "thoughts"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal("failed to create user indexes", zap.Error(err))
	}
	cancel()

	userService := services.NewUserService(userStore, thoughtStore)
	thoughtService := services.NewThoughtService(thoughtStore, userStore)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://127.0.0.1:5500", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.UserRouter(router, controllers.NewUserController(userService))
	routes.ThoughtRouter(router, controllers.NewThoughtController(thoughtService))

	port := intializers.GetEnv("PORT", "8080")
	log.Info("starting server", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
