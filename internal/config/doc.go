// Package config defines Options, the compiler-wide toggle set loadable
// from YAML (mirroring funvibe-funxy's own funxy.yaml-via-yaml.v3 idiom,
// applied here since the teacher itself has no config file of its own).
package config
