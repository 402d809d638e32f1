// Package browser drives Chromium over the DevTools protocol with chromedp.
//
// A Session either launches a browser (headless unless asked otherwise) or
// attaches to one that is already running, and hands out Page values that
// satisfy tmdbweb.Page. Tabs whose URL already matches a destination are
// reused. A persistent profile directory is guarded by a file lock so two runs
// cannot share one.
package browser
