package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"paperbot-go/internal/config"
	"paperbot-go/internal/controller"
	"paperbot-go/internal/handler"
	"paperbot-go/internal/service"
	"paperbot-go/pkg/mcp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var configPath = flag.String("config", "", "Path to app configuration file")
	var filePath = flag.String("file", "", "Analyze a single source file and exit")
	var language = flag.String("lang", "python", "Source language for -file mode")
	var outPath = flag.String("out", "", "Write the report to this file instead of stdout")
	flag.Parse()

	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(zapcore.InfoLevel)
	logger, err := cfgZap.Build()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
	}

	if level, parseErr := zapcore.ParseLevel(cfg.App.LogLevel); parseErr == nil {
		cfgZap.Level.SetLevel(level)
	}

	logger.Info("Configuration loaded successfully", zap.Any("config", cfg))

	store, err := service.NewGraphStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize graph store", zap.Error(err))
	}
	if store != nil {
		defer store.Close(context.Background())
	}

	analyzer, err := service.NewAnalyzer(cfg, store, logger)
	if err != nil {
		logger.Fatal("Failed to initialize analyzer", zap.Error(err))
	}

	// One-shot mode: analyze a file, print or write the report, exit
	if *filePath != "" {
		if err := analyzeFile(analyzer, *filePath, *language, *outPath, logger); err != nil {
			logger.Fatal("Analysis failed", zap.String("file", *filePath), zap.Error(err))
		}
		return
	}

	analyzeController := controller.NewAnalyzeController(analyzer, logger)
	mcpServer := mcp.NewAnalyzerServer(analyzer, cfg, logger)
	router := handler.SetupRouter(analyzeController, mcpServer, logger)

	address := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting server", zap.String("address", address))
	if err := router.Run(address); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func analyzeFile(analyzer *service.Analyzer, filePath, language, outPath string, logger *zap.Logger) error {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	rep, err := analyzer.Analyze(context.Background(), source, language)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	if outPath == "" {
		fmt.Println(string(payload))
		return nil
	}

	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Report written", zap.String("path", outPath))
	return nil
}
