// Package config holds the configuration for gwflow runs.
//
// Configuration flows from CLI flags and an optional YAML file (.gwflow,
// searched in the current directory and then the home directory) into a
// single flat Config struct that is validated once, before any computation.
// Venue definitions live in the YAML file: each venue carries an explicit
// kind tag (circle, rectangle, polygon) decoded once into a shape, never
// classified by trial and error.
package config
