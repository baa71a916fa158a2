package config

import "os"

func Port() string {
	if port, ok := os.LookupEnv("APP_PORT"); ok {
		return port
	}
	return ":8080"
}
