//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// goose (migrations) and sqlc (repository codegen) are pinned through the
// tool directives in go.mod. Service mocks follow the moq layout but are
// maintained by hand alongside the tests that use them.
