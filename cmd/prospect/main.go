package main

import (
	"context"
	"log"

	"github.com/shestoi/prospect-agent/internal/app"
	"github.com/shestoi/prospect-agent/internal/config"
)

func main() {
	// Загружаем конфигурацию (.env + переменные окружения)
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Собираем граф зависимостей
	application, err := app.Build(context.Background(), settings)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	// Блокируется до graceful shutdown
	if err := application.Run(context.Background()); err != nil {
		log.Fatalf("Service error: %v", err)
	}
}
