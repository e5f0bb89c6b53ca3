// handypi-consumer is the reference consumer: it binds to the tracker's
// exchange and prints every decoded gesture event.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lasaths/HandyPi/internal/messaging"
)

func main() {
	fmt.Println("HandyPi - Event Consumer")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	cfg, err := messaging.ParseConfig()
	if err != nil {
		log.Fatalf("Invalid broker configuration: %v", err)
	}

	consumer, err := messaging.NewConsumer(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to broker: %v", err)
	}
	defer consumer.Close()

	consumer.OnTrigger = func(active bool) {
		if active {
			fmt.Println("Trigger: active")
		} else {
			fmt.Println("Trigger: released")
		}
	}
	consumer.OnPosition = func(x, y float64) {
		fmt.Printf("Position: (%.4f, %.4f)\n", x, y)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("Consumer stopped: %v", err)
	}
}
