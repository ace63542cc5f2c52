// Package confloader loads respkv configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Overrides (command-line flags), see WithOverrides
//  2. Environment variables with the RESPKV_ prefix
//  3. A YAML configuration file
//  4. Whatever the target struct already holds (defaults)
//
// Environment variables use a double underscore between levels and keep
// single underscores inside a key:
//
//	RESPKV_SERVER__REDIS__READ_TIMEOUT=5s  ->  server.redis.read_timeout
//
// Watcher reports changes to the configuration file via fsnotify so the
// server can apply reloadable settings at runtime.
package confloader
