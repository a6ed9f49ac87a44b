package main

import (
	"os"

	"go.uber.org/zap"

	llmrecipes "github.com/temirov/llm-recipes/cmd/llm-recipes"
)

func main() {
	logger := zap.Must(zap.NewProduction())

	executionErr := llmrecipes.Execute()
	if executionErr != nil {
		logger.Error("command execution failed", zap.Error(executionErr))
		_ = logger.Sync()
		os.Exit(1)
	}

	_ = logger.Sync()
}
