package main

import (
	"log"

	"github.com/MrSnakeDoc/adminmarks/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ adminmarks failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ adminmarks stopped with error: %v", err)
	}
}
