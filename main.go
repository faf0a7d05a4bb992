package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/per2jensen/clonepulse/internal/app"
	"github.com/per2jensen/clonepulse/internal/utils"
	log "github.com/sirupsen/logrus"
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	// Local development convenience; a missing .env file is fine.
	_ = godotenv.Load()

	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	if err := application.Run(); err != nil {
		var validationErr *utils.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", validationErr.Message)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
