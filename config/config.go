package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env if present; deployments usually set env directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process env")
	}
}
