// Package config loads tisearch configuration from local and global YAML files
// and resolves the state directory. The CLI maps flags and files into engine
// configuration; the engine itself reads no configuration.
package config
