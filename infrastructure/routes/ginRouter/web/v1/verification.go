package routev1

import (
	"github.com/gin-gonic/gin"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/controller"
	"votegate.io/application/controller/dto"
	"votegate.io/application/interfaces"
)

func VerificationRouter(router *gin.RouterGroup) {
	verificationRouter := router.Group("/verification")
	{
		verificationRouter.POST("/live-capture", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SubmitLiveCaptureDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.SubmitLiveCapture(&interfaces.ApplicationContext[dto.SubmitLiveCaptureDTO]{
				Ctx:      ctx,
				Body:     &body,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
