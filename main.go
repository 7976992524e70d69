package main

import (
	"votegate.io/infrastructure"
	"votegate.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
