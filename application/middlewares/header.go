package middlewares

import (
	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/interfaces"
)

func DeviceIDMiddleware(ctx *interfaces.ApplicationContext[any], clientIP string) (*interfaces.ApplicationContext[any], bool) {
	deviceID := ctx.GetHeader("X-Device-Id")
	if deviceID == nil || *deviceID == "" {
		apperrors.ClientError(ctx.Ctx, "missing device id header", nil, nil)
		return nil, false
	}
	ctx.DeviceID = *deviceID
	return ctx, true
}
