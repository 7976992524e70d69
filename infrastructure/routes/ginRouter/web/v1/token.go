package routev1

import (
	"github.com/gin-gonic/gin"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/controller"
	"votegate.io/application/controller/dto"
	"votegate.io/application/interfaces"
	middlewares "votegate.io/infrastructure/middleware"
)

func TokenRouter(router *gin.RouterGroup) {
	tokenRouter := router.Group("/token")
	{
		tokenRouter.POST("/issue", middlewares.OTPTokenMiddleware("verify_voter"), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.IssueToken(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		tokenRouter.POST("/validate", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ValidateTokenDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ValidateToken(&interfaces.ApplicationContext[dto.ValidateTokenDTO]{
				Ctx:      ctx,
				Body:     &body,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
