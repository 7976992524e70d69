package auth

type ClaimsData struct {
	Issuer    string
	VoterID   string
	Phone     *string
	ExpiresAt int64
	IssuedAt  int64
	DeviceID  string
	Intent    string
}
