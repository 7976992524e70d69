package env

import (
	"github.com/joho/godotenv"
)

// Loads variables from a local .env file if one exists. In deployed
// environments the variables are expected to already be set.
func LoadEnv() {
	godotenv.Load()
}
