// quatcalc evaluates a YAML rotation scenario and prints the composed rotation and rotated vector for each step.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/solarlune/quaternions/internal/scenario"
)

func main() {

	path := flag.String("scenario", "", "Path to a YAML scenario file")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, or error")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "quatcalc:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(*path, logger); err != nil {
		logger.Error("scenario failed", zap.String("scenario", *path), zap.Error(err))
		fmt.Fprintln(os.Stderr, "quatcalc:", err)
		os.Exit(1)
	}

}

func run(path string, logger *zap.Logger) error {

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	s, err := scenario.Load(file)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	results, err := s.Evaluate(logger)
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Println(result.Step)
		fmt.Println("  rotation:  ", result.Rotation)
		fmt.Println("  axis-angle:", result.AxisAngle)
		fmt.Println("  matrix:    ", result.Matrix)
		fmt.Println("  input:     ", result.Input)
		fmt.Println("  output:    ", result.Output)
	}

	return nil

}

func newLogger(level string) (*zap.Logger, error) {

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	return config.Build()

}
