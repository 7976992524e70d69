package ratelimit

import (
	"encoding/json"
	"os"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"

	"votegate.io/application/utils"
)

// TokenBucketPerIP caps request bursts per client address ahead of the
// device and token middlewares. The ceiling is tunable because many
// voters can sit behind one polling-station NAT.
func TokenBucketPerIP() gin.HandlerFunc {
	requestsPerSecond := utils.ParseFloatWithDefault(os.Getenv("RATE_LIMIT_RPS"), 15)

	body, _ := json.Marshal(map[string]any{
		"message": "too many requests from this address, wait a moment and try again",
	})

	ipLimiter := tollbooth.NewLimiter(requestsPerSecond, &limiter.ExpirableOptions{
		DefaultExpirationTTL: 30 * time.Second,
	})
	ipLimiter.SetMessageContentType("application/json")
	ipLimiter.SetMessage(string(body))

	return tollbooth_gin.LimitHandler(ipLimiter)
}
