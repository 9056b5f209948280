// Package config defines mindala tool settings.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// MINDALA_* environment variables.
package config
