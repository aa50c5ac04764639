// Package mocks provides centralized mock implementations for testing.
//
// Each mock implements one of the application's interfaces with a
// function field per method. Tests override only the methods they care
// about; unset methods fall back to a simple in-memory default.
package mocks
