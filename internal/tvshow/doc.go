// Package tvshow holds the records posted to TMDb (seasons and episodes), the
// options controlling a post, and the per-item Feedback returned to callers.
package tvshow
