package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// buildLogger constructs the CLI logger: a console core on stderr at the
// requested level, optionally teed with a file core. The returned flush
// function syncs buffered entries and must be called before exit.
func buildLogger(level, file, mode string) (*zap.Logger, func(), error) {
	consoleLevel := consoleLevelFor(level)

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.TimeKey = zapcore.OmitKey

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), consoleLevel),
	}

	closeFile := func() {}
	if file != "" {
		f, err := openLogFile(file, mode)
		if err != nil {
			return nil, nil, err
		}
		closeFile = func() { _ = f.Close() }

		fileEC := zap.NewDevelopmentEncoderConfig()
		fileEC.EncodeCaller = nil
		fileEC.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(fileEC), zapcore.AddSync(f), zapcore.DebugLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	flush := func() {
		_ = logger.Sync()
		closeFile()
	}
	return logger, flush, nil
}

// consoleLevelFor maps a config level name to the console enabler.
// "none" silences everything below Error so failures still surface.
func consoleLevelFor(level string) zapcore.LevelEnabler {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "none":
		return zapcore.ErrorLevel
	default: // "normal" and unset
		return zapcore.InfoLevel
	}
}

// openLogFile opens the log destination in append or overwrite mode.
func openLogFile(path, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "overwrite" {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o600) // #nosec G304 -- log path is user-provided
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
