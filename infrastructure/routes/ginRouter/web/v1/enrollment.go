package routev1

import (
	"github.com/gin-gonic/gin"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/controller"
	"votegate.io/application/controller/dto"
	"votegate.io/application/interfaces"
	middlewares "votegate.io/infrastructure/middleware"
)

func EnrollmentRouter(router *gin.RouterGroup) {
	enrollmentRouter := router.Group("/enrollment")
	{
		enrollmentRouter.POST("/face", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.EnrollFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.EnrollFace(&interfaces.ApplicationContext[dto.EnrollFaceDTO]{
				Ctx:      ctx,
				Body:     &body,
				DeviceID: appContext.DeviceID,
			})
		})

		enrollmentRouter.GET("/status", middlewares.OTPTokenMiddleware("verify_voter"), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.EnrollmentStatus(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
