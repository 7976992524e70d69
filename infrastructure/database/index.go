package database

import "votegate.io/infrastructure/database/connection"

func SetUpDatabase() {
	connection.ConnectToDatabase()
}

type BaseModel interface {
	ParseModel() any
}
