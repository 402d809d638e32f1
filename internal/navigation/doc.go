// Package navigation builds canonical TMDb website URLs for shows, seasons and
// their edit sections. Every function is pure; nothing here touches a browser.
package navigation
