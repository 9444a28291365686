// Package main starts a Temporal worker that serves the evaluation workflow
// and its activities on the addie-evaluation task queue.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/isdbench/addiebench/internal/worker"
	"github.com/isdbench/addiebench/internal/workflow"
)

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	hostPort := os.Getenv("TEMPORAL_HOST_PORT")
	if hostPort == "" {
		hostPort = client.DefaultHostPort
	}

	c, err := client.Dial(client.Options{HostPort: hostPort})
	if err != nil {
		return fmt.Errorf("connect to Temporal at %s: %w", hostPort, err)
	}
	defer c.Close()

	judgeClient, err := worker.InitializeJudgeClient()
	if err != nil {
		return err
	}

	w := sdkworker.New(c, workflow.TaskQueue, sdkworker.Options{})
	worker.RegisterAll(w, judgeClient)

	logger.Info("worker starting", "task_queue", workflow.TaskQueue, "temporal", hostPort)
	return w.Run(sdkworker.InterruptCh())
}
