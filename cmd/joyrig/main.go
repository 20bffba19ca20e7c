// JoyRig renders a 3D model steered by an Arduino joystick over serial.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/frostbay/joyrig/internal/config"
	"github.com/frostbay/joyrig/internal/game"
	"github.com/frostbay/joyrig/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting JoyRig",
		zap.String("model", cfg.Model.Path),
		zap.String("port", cfg.Serial.Port),
	)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer g.Close()

	// Ctrl-C stops the loop cleanly so the serial port and GL context get
	// torn down.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("signal received, shutting down", zap.String("signal", sig.String()))
		g.RequestStop()
	}()

	logger.Info("controls: move stick to slide and turn, press to jump, ESC to quit")

	g.Run()
}
