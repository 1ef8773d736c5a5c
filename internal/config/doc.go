// Package config provides the configuration of libcatalog: the collation
// locale, the initial sort field, parse-error handling, the watch debounce
// and the inventory scanner settings. Values come from an optional YAML
// file and are overridden by CLI flags.
package config
