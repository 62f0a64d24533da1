package configs

import "os"

var Envs = struct {
	LISTEN_ADDR     string
	ALLOWED_ORIGINS string
	GIN_MODE        string
}{
	LISTEN_ADDR:     getenv("LISTEN_ADDR", ":3001"),
	ALLOWED_ORIGINS: getenv("ALLOWED_ORIGINS", "http://localhost:5173"),
	GIN_MODE:        os.Getenv("GIN_MODE"),
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
