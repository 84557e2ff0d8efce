package config

import "github.com/joho/godotenv"

// loadDotEnv is a variable so tests can run without a .env file on disk.
var loadDotEnv = func() error {
	return godotenv.Load()
}
