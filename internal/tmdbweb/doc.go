// Package tmdbweb drives the TMDb edit pages for TV seasons and episodes.
//
// The Reconciler decides per record whether to add, update, or leave an entry
// alone by scraping the Kendo listing grid, matching rows by number, filling
// the modal edit form, and re-scraping to confirm the result. Every page
// interaction goes through the Page interface so the same logic runs against
// a real browser tab or an in-memory fake in tests.
//
// Item-level failures (a missing button, a row that did not show up after
// saving) become StatusError feedback and the batch continues. Failures that
// make the whole session unusable (the listing table never rendering,
// navigation landing elsewhere, cancellation) are returned as errors.
package tmdbweb
