package main

import (
	"github.com/joho/godotenv"

	"github.com/Suvo-Ghosh/EMS/internal/app/server"
)

func main() {
	// Missing .env is fine, real deployments configure the environment
	// directly.
	_ = godotenv.Load()

	server.Run()
}
