// Package gleaner normalizes content from heterogeneous web sources
// (RSS/Atom feeds, static HTML pages, JavaScript-rendered pages, and
// platform endpoints such as Reddit or StackOverflow) into a single
// record shape for downstream export.
//
// Given an arbitrary URL the system classifies it into a source type,
// routes it to an extraction strategy, and degrades gracefully when a
// strategy fails: a URL that produces nothing is a soft miss, never a
// batch abort.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. gofeed/,
// trafilatura/, rod/); orchestration lives in scrape/.
package gleaner
