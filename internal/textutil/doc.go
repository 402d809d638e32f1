// Package textutil normalizes text scraped from HTML before it is compared
// with user input.
package textutil
