//go:build tools
// +build tools

// Package tools tracks mockgen, which regenerates internal/application/mocks via go generate.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
