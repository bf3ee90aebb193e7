package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/polybot/internal/bot"
	"github.com/example/polybot/internal/database"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; environment variables win otherwise
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	b, err := bot.New()
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		log.Println("Bot started. Press Ctrl+C to stop.")
		if err := b.Start(); err != nil {
			log.Printf("Bot error: %v", err)
		}
		close(done)
	}()

	sig := <-sigChan
	log.Printf("Received signal: %v", sig)
	b.Stop()

	<-done
	log.Println("Bot stopped successfully")
}
