// Package config loads, normalizes, and validates tmdbpost configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a .env file from the working directory,
// and honours TMDBPOST_* environment fallbacks for credentials, browser
// location, and the date locale.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
