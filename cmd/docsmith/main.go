package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"docsmith/infrastructure/audit"
	"docsmith/infrastructure/cache"
	httpserver "docsmith/infrastructure/http"
	"docsmith/infrastructure/llm"
	"docsmith/infrastructure/rbac"
	"docsmith/infrastructure/sqlite"
)

func main() {
	addr := getenv("APP_ADDR", ":8080")
	dbPath := getenv("SQLITE_PATH", "docsmith.db")

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, "infrastructure/sqlite/migrations"); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	sessionCache := cache.NewUserSessionCache()
	userCache := cache.NewUserCache()
	rbacCache := cache.NewRbacRolesCache()
	rbacSvc := rbac.New(rbacCache)
	auditSvc := audit.NewService()

	llmCfg := llm.DefaultConfig(os.Getenv("OPENROUTER_API_KEY"))
	if model := os.Getenv("OPENROUTER_MODEL"); model != "" {
		llmCfg.Model = model
	}
	if baseURL := os.Getenv("OPENROUTER_BASE_URL"); baseURL != "" {
		llmCfg.BaseURL = baseURL
	}
	if siteURL := os.Getenv("APP_BASE_URL"); siteURL != "" {
		llmCfg.SiteURL = siteURL
	}
	llmClient := llm.NewClient(llmCfg)

	server := httpserver.NewServer(addr, db, sessionCache, userCache, rbacSvc, rbacCache, auditSvc, llmClient)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("docsmith listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
