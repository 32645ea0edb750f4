package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"kvs/utils/log"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

// An in-memory Redis-compatible server for trying the client without a real
// Redis. Expiry advances with the wall clock in tick-sized steps.
func main() {
	addr := pflag.String("addr", "127.0.0.1:6379", "the address to listen on")
	password := pflag.String("password", "", "require this password from clients")
	tick := pflag.Duration("tick", 100*time.Millisecond, "how often key expiry is advanced")
	pflag.Parse()

	log.DefaultLogger(zapcore.InfoLevel)

	srv := miniredis.NewMiniRedis()
	if *password != "" {
		srv.RequireAuth(*password)
	}
	if err := srv.StartAddr(*addr); err != nil {
		log.Errorf("listen on [%s] error, %v", *addr, err)
		os.Exit(1)
	}
	defer srv.Close()
	log.Infof("kvs dev server listening on [%s]", srv.Addr())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(*tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			srv.FastForward(*tick)
		case sig := <-sigCh:
			log.Warnf("received %s, shutting down", sig)
			return
		}
	}
}
