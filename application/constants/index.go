package constants

import (
	"os"
	"time"

	"votegate.io/application/utils"
)

// votegate response codes
// these consist of 4 digit numbers
//
// the 1st 3 are randomly generated but represent specific scenarios
// 4th indicates if the response requires user interaction through a dialog box. 0 means it does not require. 1 means it requires.

var VOTER_NOT_ENROLLED uint = 4310        // descriptor missing, direct the voter to an enrollment officer
var FACE_NOT_MATCHED uint = 4521          // take the voter back to the capture page for another attempt
var LIVENESS_NOT_SATISFIED uint = 4531    // show capture instructions (blink twice, move head) and retry
var VERIFICATION_RATE_LIMITED uint = 4540 // show the cooldown timer before another attempt is allowed
var TOKEN_INVALIDATED uint = 7110         // session token expired or spent, restart from authentication
var OTP_REQUIRED uint = 7120              // take the voter to the otp page
var BALLOT_RECORDED uint = 9210           // terminal, show the confirmation page

const SUPPORT_EMAIL = "help@votegate.io"

// FACE_MATCH_THRESHOLD is the maximum Euclidean distance between two
// descriptors that still counts as the same person. It tunes the
// false-accept/false-reject tradeoff and must stay inside the range the
// recognition model was validated for.
func FaceMatchThreshold() float64 {
	threshold := utils.ParseFloatWithDefault(os.Getenv("FACE_MATCH_THRESHOLD"), 0.6)
	if threshold < 0.45 || threshold > 0.8 {
		return 0.6
	}
	return threshold
}

func OTUTimeToLive() time.Duration {
	return time.Duration(utils.ParseIntWithDefault(os.Getenv("OTU_TTL_MINUTES"), 10)) * time.Minute
}

func MaxVerificationAttempts() int {
	return utils.ParseIntWithDefault(os.Getenv("MAX_VERIFICATION_ATTEMPTS"), 3)
}

func VerificationCooldown() time.Duration {
	return time.Duration(utils.ParseIntWithDefault(os.Getenv("VERIFICATION_COOLDOWN_MINUTES"), 5)) * time.Minute
}

func ExtractionTimeout() time.Duration {
	return time.Duration(utils.ParseIntWithDefault(os.Getenv("EXTRACTION_TIMEOUT_SECONDS"), 5)) * time.Second
}

const OTP_TTL = 10 * time.Minute
