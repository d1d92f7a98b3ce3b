// Package file provides the TOML configuration store.
// Settings live in ~/.docseek/config.toml unless another directory is given.
package file
