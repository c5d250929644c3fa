package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arecibodash/internal/stub"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8088", "Listen address")
	fixturePath := flag.String("fixture", "", "YAML fixture (defaults to the built-in one)")
	flag.Parse()

	var (
		fixture *stub.Fixture
		err     error
	)
	if *fixturePath != "" {
		fixture, err = stub.LoadFixture(*fixturePath)
	} else {
		fixture, err = stub.ParseFixture(stub.DefaultFixture)
	}
	if err != nil {
		log.Fatalf("Error loading fixture: %v", err)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           stub.NewRouter(fixture),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown failed: %v", err)
		}
	}()

	log.Printf("Serving %d host groups on http://%s", len(fixture.Hosts), *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
