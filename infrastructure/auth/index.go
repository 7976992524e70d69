package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt"

	"votegate.io/application/constants"
	"votegate.io/infrastructure/cryptography"
	"votegate.io/infrastructure/database/repository/cache"
	"votegate.io/infrastructure/logger"
)

const otpChars = "1234567890"

// GenerateOTP mints and caches a hashed OTP for a delivery channel. Outside
// production the code is fixed so test devices do not need a live SMS lane.
func GenerateOTP(length int, channel string) (*string, error) {
	var otp string
	if os.Getenv("ENV") == "staging" || os.Getenv("ENV") == "development" {
		otp = "000000"
	} else {
		buffer := make([]byte, length)
		_, err := rand.Read(buffer)
		if err != nil {
			return nil, err
		}
		otpCharsLength := len(otpChars)
		for i := 0; i < length; i++ {
			buffer[i] = otpChars[int(buffer[i])%otpCharsLength]
		}
		otp = string(buffer)
	}
	otpSaved := saveOTP(channel, otp)
	if !otpSaved {
		return nil, errors.New("could not save otp")
	}
	return &otp, nil
}

func saveOTP(channel string, otp string) bool {
	hashedOTP, err := cryptography.CryptoHasher.HashString(otp, nil)
	if err != nil {
		logger.Error("auth module error - error while saving otp", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false
	}
	return cache.Cache.CreateEntry(fmt.Sprintf("%s-otp", channel), string(hashedOTP), constants.OTP_TTL)
}

// VerifyOTP checks an OTP against its cached hash and burns it on success.
func VerifyOTP(key string, otp string) (string, bool) {
	data := cache.Cache.FindOne(fmt.Sprintf("%s-otp", key))
	if data == nil {
		logger.Info(fmt.Sprintf("%s otp not found", key))
		return "this otp has expired", false
	}
	success := cryptography.CryptoHasher.VerifyHashData(*data, otp)
	if !success {
		return "wrong otp provided", false
	}
	cache.Cache.DeleteOne(fmt.Sprintf("%s-otp", key))
	return "", true
}

func GenerateAuthToken(claimsData ClaimsData) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":      os.Getenv("JWT_ISSUER"),
		"voterID":  claimsData.VoterID,
		"exp":      claimsData.ExpiresAt,
		"iat":      claimsData.IssuedAt,
		"deviceID": claimsData.DeviceID,
		"intent":   claimsData.Intent,
		"phone":    claimsData.Phone,
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func DecodeAuthToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
	})
	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			err = errors.New("invalid token signature used")
			return nil, err
		}
		logger.Error("error decoding jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !token.Valid {
		err := errors.New("invalid token used")
		logger.Error(err.Error())
		return nil, err
	}
	return token, nil
}
