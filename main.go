package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	l, err := newLogger(cfg.LogDir)
	if err != nil {
		log.Printf("could not open log file, falling back to stdout: %v", err)
		l = &logger{log.New(os.Stdout, "", log.LstdFlags)}
	}

	shutdownCtx, shutdown := context.WithCancel(context.Background())

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-sigCtx.Done()
		shutdown()
	}()

	server := NewServer(cfg)
	handler := loggingMiddleware(server.routes(), l)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     handler,
		BaseContext: func(_ net.Listener) context.Context { return shutdownCtx },
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server stopped with error: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exiting")
}
