package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"Pumpcalc/internal/logger"
)

func main() {
	log := logger.InitLog(zap.NewAtomicLevelAt(zapcore.WarnLevel))
	undo := zap.ReplaceGlobals(log)
	defer undo()

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
