package infrastructure

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/infrastructure/logger"
	middlewares "votegate.io/infrastructure/middleware"
	ratelimit "votegate.io/infrastructure/ratelimit"
	webRoutev1 "votegate.io/infrastructure/routes/ginRouter/web/v1"
	server_response "votegate.io/infrastructure/serverResponse"
	startup "votegate.io/infrastructure/startUp"
)

type ginServer struct{}

func (s *ginServer) Start() {
	startup.StartServices()
	defer startup.CleanUpServices()

	server := gin.Default()
	origins := []string{}
	if os.Getenv("GIN_MODE") == "debug" {
		origins = append(origins, "http://localhost:5174")
	} else if os.Getenv("GIN_MODE") == "release" {
		origins = append(origins, "https://votegate.io", "https://www.votegate.io")
	}
	corsConfig := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Device-Id", "X-Otp-Token", "X-Session-Token", "User-Agent"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	server.Use(cors.New(corsConfig))
	server.Use(ratelimit.TokenBucketPerIP())

	v1 := server.Group("/api")
	v1.Use(middlewares.DeviceIDMiddleware())

	routerV1 := v1.Group("/v1")
	{
		webRoutev1.AuthRouter(routerV1)
		webRoutev1.EnrollmentRouter(routerV1)
		webRoutev1.TokenRouter(routerV1)
		webRoutev1.VerificationRouter(routerV1)
		webRoutev1.VoteRouter(routerV1)
		webRoutev1.VoterRouter(routerV1)
	}

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil, nil)
	})

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL))
	})

	gin_mode := os.Getenv("GIN_MODE")
	port := os.Getenv("PORT")
	if gin_mode == "debug" || gin_mode == "release" {
		logger.Info(fmt.Sprintf("Server starting on PORT %s", port))
		server.Run(fmt.Sprintf(":%s", port))
	} else {
		panic(fmt.Sprintf("invalid gin mode used - %s", gin_mode))
	}
}
