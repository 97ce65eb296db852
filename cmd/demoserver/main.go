// Command demoserver serves the MyCV REST API locally for trying out the
// client and the mycv CLI.
// Usage: go run ./cmd/demoserver [port]
// Default port: 8000 (or demo_port from the config file / MYCV_DEMO_PORT)
//
// Extra environment:
//
//	MYCV_DEMO_DSN         sqlite file to persist data in (default: memory)
//	MYCV_DEMO_CHROME_PDF  "true" prints resumes through headless Chrome
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/raysh454/mycv/internal/config"
	"github.com/raysh454/mycv/internal/demoserver"
	"github.com/raysh454/mycv/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg, err := config.Load(ctx, "")
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	level, _ := logging.ParseLevel(appCfg.LogLevel)

	cfg := demoserver.DefaultConfig()
	cfg.Port = appCfg.DemoPort
	cfg.ChromeHeadless = appCfg.ChromeHeadless
	cfg.Logger = logging.NewLogger(os.Stdout, "demoserver", level)
	if dsn := os.Getenv("MYCV_DEMO_DSN"); dsn != "" {
		cfg.DSN = dsn
	}
	if v, err := strconv.ParseBool(os.Getenv("MYCV_DEMO_CHROME_PDF")); err == nil {
		cfg.ChromePDF = v
	}

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	server, err := demoserver.NewServer(cfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	defer server.Close()

	fmt.Println("===========================================")
	fmt.Println("   MyCV Demo Server")
	fmt.Println("===========================================")
	fmt.Printf("API:     http://localhost:%d/api\n", cfg.Port)
	fmt.Printf("Storage: %s\n", cfg.DSN)
	fmt.Println()

	httpServer := server.HTTPServer()
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}
}
