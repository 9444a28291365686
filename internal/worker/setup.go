package worker

import (
	"fmt"

	"github.com/isdbench/addiebench/internal/judge"
)

// InitializeJudgeClient builds the judge client from process environment.
// Returns the client for dependency injection rather than setting global
// state; call during worker startup.
func InitializeJudgeClient() (judge.Judge, error) {
	cfg := judge.ConfigFromEnv()
	client, err := judge.NewClient(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize judge client: %w", err)
	}
	return client, nil
}
