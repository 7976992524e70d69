package middlewares

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/interfaces"
	"votegate.io/infrastructure/auth"
	"votegate.io/infrastructure/database/repository/cache"
	"votegate.io/infrastructure/logger"
)

// OTPTokenMiddleware admits only requests carrying the short-lived JWT
// minted when an OTP was dispatched, and only for the declared intent.
func OTPTokenMiddleware(ctx *interfaces.ApplicationContext[any], ipAddress string, intent string) (*interfaces.ApplicationContext[any], bool) {
	otpTokenPointer := ctx.GetHeader("X-Otp-Token")
	if otpTokenPointer == nil {
		apperrors.AuthenticationError(ctx.Ctx, "missing otp token")
		return nil, false
	}
	otpToken := *otpTokenPointer
	validAccessToken, err := auth.DecodeAuthToken(otpToken)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, err.Error())
		return nil, false
	}
	if !validAccessToken.Valid {
		apperrors.AuthenticationError(ctx.Ctx, "invalid access token used")
		return nil, false
	}
	authTokenClaims := validAccessToken.Claims.(jwt.MapClaims)
	if authTokenClaims["iss"] != os.Getenv("JWT_ISSUER") {
		apperrors.AuthenticationError(ctx.Ctx, "this is not an authorized access token")
		return nil, false
	}
	phone, _ := authTokenClaims["phone"].(string)
	if phone == "" {
		apperrors.AuthenticationError(ctx.Ctx, "malformed access token used")
		return nil, false
	}
	otpIntent := cache.Cache.FindOne(fmt.Sprintf("%s-otp-intent", phone))
	if otpIntent == nil {
		logger.Error("otp intent missing")
		apperrors.ClientError(ctx.Ctx, "otp expired", nil, nil)
		return nil, false
	}
	tokenIntent, _ := authTokenClaims["intent"].(string)
	if *otpIntent != tokenIntent || tokenIntent != intent {
		logger.Error("wrong otp intent in token")
		apperrors.ClientError(ctx.Ctx, "incorrect intent", nil, nil)
		return nil, false
	}
	voterID, _ := authTokenClaims["voterID"].(string)
	ctx.SetContextData("OTPToken", otpToken)
	ctx.SetContextData("OTPPhone", phone)
	ctx.SetContextData("VoterID", voterID)
	return ctx, true
}
