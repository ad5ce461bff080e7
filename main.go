package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load a .env file if one exists. Environment variables that are
	// already set take precedence.
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if os.Getenv("SECRET_KEY") == "" {
		log.Fatal().Msg("SECRET_KEY must be set, it protects the stored tax ID and the CSRF tokens")
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Str("API_URL", apiURL).Msg("API_URL must be a valid URL")
	}

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		// Create the data directory for the default database location
		dataDir := filepath.Join(".", "data")
		err := os.MkdirAll(dataDir, os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		dsn = "data/church.db"
	}

	// Connect to the database and migrate the schema
	err = models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = seed()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(baseURL)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

// seed creates the initial church and admin user on an empty database.
//
// The admin token is taken from ADMIN_TOKEN. Without it, an empty
// database stays empty and the API rejects every request, which is safer
// than a well known default credential.
func seed() error {
	var count int64
	err := models.DB.Model(&models.User{}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	token, ok := os.LookupEnv("ADMIN_TOKEN")
	if !ok || token == "" {
		log.Warn().Msg("database is empty and ADMIN_TOKEN is not set, no user can log in")
		return nil
	}

	church := models.Church{
		Name: os.Getenv("CHURCH_NAME"),
	}
	err = models.DB.Create(&church).Error
	if err != nil {
		return err
	}

	admin := models.User{
		ChurchID:    church.ID,
		Name:        "Administrator",
		Token:       token,
		Permissions: "*:*",
	}
	err = models.DB.Create(&admin).Error
	if err != nil {
		return err
	}

	log.Info().Str("church", church.ID.String()).Msg("seeded initial church and admin user")
	return nil
}
