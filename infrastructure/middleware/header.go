package middlewares

import (
	"github.com/gin-gonic/gin"

	"votegate.io/application/interfaces"
	"votegate.io/application/middlewares"
)

func DeviceIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.DeviceIDMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:    ctx,
			Keys:   ctx.Keys,
			Header: ctx.Request.Header,
		}, ctx.ClientIP())
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
