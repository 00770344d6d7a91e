// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/brisinga/pkg/config"
	"github.com/ssargent/brisinga/pkg/storage"
)

// StoreOpener opens a buffer store rooted at the given path.
type StoreOpener func(path string) (*storage.BufferStore, error)

// ConfigLoader loads configuration from the given path.
type ConfigLoader func(path string) (*config.Config, error)

// Container holds all the dependencies for the application
type Container struct {
	openStore  StoreOpener
	loadConfig ConfigLoader
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		openStore:  storage.Open,
		loadConfig: config.LoadConfig,
	}
}

// OpenStore opens the buffer store backing all CLI and server operations.
func (c *Container) OpenStore(path string) (*storage.BufferStore, error) {
	return c.openStore(path)
}

// LoadConfig loads the yaml configuration.
func (c *Container) LoadConfig(path string) (*config.Config, error) {
	return c.loadConfig(path)
}

// SetStoreOpener allows overriding the store opener (for testing)
func (c *Container) SetStoreOpener(opener StoreOpener) {
	c.openStore = opener
}

// SetConfigLoader allows overriding the config loader (for testing)
func (c *Container) SetConfigLoader(loader ConfigLoader) {
	c.loadConfig = loader
}
