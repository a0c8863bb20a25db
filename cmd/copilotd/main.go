package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"warecopilot/frontend/chat"
	"warecopilot/infrastructure/audit"
	"warecopilot/infrastructure/cache"
	httpserver "warecopilot/infrastructure/http"
	"warecopilot/infrastructure/nlu"
	"warecopilot/infrastructure/sqlite"
	"warecopilot/infrastructure/stt"
)

func main() {
	addr := getenv("APP_ADDR", ":8080")
	dbPath := getenv("SQLITE_PATH", "warecopilot.db")
	interpreterURL := os.Getenv("INTERPRETER_URL")
	sttURL := os.Getenv("STT_URL")

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, "infrastructure/sqlite/migrations"); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	pending := cache.NewPendingDeleteCache(cache.DefaultPendingDeleteTTL)
	auditSvc := audit.NewService()

	// Without a remote interpreter the rule-based parser serves alone.
	var extractor chat.Extractor = chat.NewFallbackExtractor()
	var responder chat.Responder = staticResponder{}
	if interpreterURL != "" {
		nluClient := nlu.NewClient(interpreterURL)
		extractor = nluClient
		responder = nluClient
	}
	var transcriber chat.Transcriber = unavailableTranscriber{}
	if sttURL != "" {
		transcriber = stt.NewClient(sttURL)
	}

	chatSvc := chat.NewService(extractor, pending)

	server := httpserver.NewServer(addr, db, auditSvc, chatSvc, pending, responder, transcriber)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("copilotd listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// staticResponder answers /chat/respond when no interpreter service is
// configured.
type staticResponder struct{}

func (staticResponder) Respond(_ context.Context, _ string) (string, error) {
	return "I can help with receiving, searching, editing and deleting stock. Try \"check inventory\".", nil
}

// unavailableTranscriber keeps /chat/transcribe wired when no STT
// service is configured.
type unavailableTranscriber struct{}

func (unavailableTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return "", errors.New("speech-to-text service is not configured")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
