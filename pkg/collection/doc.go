// Package collection discovers Clickventure articles and processes them as
// one batch.
//
// [Driver.Discover] walks the paginated listing and returns article URLs in
// listing order, duplicates included. [Driver.Run] fetches, builds and
// renders each URL in turn. A failing article is logged, recorded in the
// [Report] with the stage it failed at, and skipped; Run itself never fails.
package collection
