package routev1

import (
	"github.com/gin-gonic/gin"

	"votegate.io/application/controller"
	"votegate.io/application/interfaces"
)

func VoterRouter(router *gin.RouterGroup) {
	voterRouter := router.Group("/voter")
	{
		voterRouter.GET("", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchVoter(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Header:   ctx.Request.Header,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
