package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string

	JWTSecret      string
	TokenMaxAge    int // seconds
	RedisURL       string

	GithubAPIBaseURL   string
	GithubClientID     string
	GithubClientSecret string
	GithubCacheTTL     int // seconds
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	tokenMaxAge, err := strconv.Atoi(os.Getenv("TOKEN_MAX_AGE"))
	if err != nil || tokenMaxAge <= 0 {
		tokenMaxAge = 360000
	}

	githubCacheTTL, err := strconv.Atoi(os.Getenv("GITHUB_REPOS_CACHE_TTL"))
	if err != nil || githubCacheTTL <= 0 {
		githubCacheTTL = 600
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	githubBase := os.Getenv("GITHUB_API_BASE_URL")
	if githubBase == "" {
		githubBase = "https://api.github.com"
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  sslMode,

		ServerPort: serverPort,

		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenMaxAge: tokenMaxAge,
		RedisURL:    os.Getenv("REDIS_URL"),

		GithubAPIBaseURL:   githubBase,
		GithubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GithubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GithubCacheTTL:     githubCacheTTL,
	}, nil
}
