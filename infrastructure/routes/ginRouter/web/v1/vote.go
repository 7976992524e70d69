package routev1

import (
	"github.com/gin-gonic/gin"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/controller"
	"votegate.io/application/controller/dto"
	"votegate.io/application/interfaces"
)

func VoteRouter(router *gin.RouterGroup) {
	voteRouter := router.Group("/vote")
	{
		voteRouter.POST("", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SubmitBallotDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.SubmitBallot(&interfaces.ApplicationContext[dto.SubmitBallotDTO]{
				Ctx:      ctx,
				Body:     &body,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
