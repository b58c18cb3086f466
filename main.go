package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mock-interview-bot/internal/config"
	"mock-interview-bot/internal/interview"
	"mock-interview-bot/internal/logger"
	"mock-interview-bot/internal/openai"
	"mock-interview-bot/internal/session"
	"mock-interview-bot/internal/storage"
	"mock-interview-bot/internal/telegram"
	"mock-interview-bot/internal/topics"
)

func main() {
	fmt.Println("🚀 Запуск бота тренировочных собеседований...")

	// Загружаем переменные окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения")
	}

	appCfg := config.LoadAppConfig()
	if err := appCfg.Validate(); err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	zlog, err := logger.New(appCfg.Log.JSON, appCfg.Log.Debug)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer zlog.Sync()

	// Загружаем конфигурацию интервью
	cfg, err := config.Load("config/interview.yaml")
	if err != nil {
		zlog.Fatal("ошибка загрузки конфигурации интервью", zap.Error(err))
	}

	// Инициализируем сервисы
	store := session.NewStore()
	controller := session.NewController(store)
	topicRepo := topics.NewRepository(cfg.Topics)
	aiClient := openai.NewClient(appCfg.OpenAI)
	archive := storage.NewService("results")
	bot := telegram.New(appCfg.Telegram.Token)

	orchestrator := interview.New(bot, aiClient, topicRepo, archive, controller, cfg, zlog)

	zlog.Info("бот инициализирован",
		zap.Int("max_questions", cfg.GetMaxQuestions()),
		zap.Int("topics", len(cfg.Topics)),
		zap.String("model", appCfg.OpenAI.Model))

	fmt.Println("🤖 Telegram бот запущен!")
	fmt.Println("📱 Найдите бота в Telegram и отправьте /start")

	// Запускаем polling
	if err := bot.StartPolling(orchestrator.HandleUpdate); err != nil {
		zlog.Fatal("ошибка запуска бота", zap.Error(err))
	}
}
