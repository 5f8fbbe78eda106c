// Package scraper harvests stadium data from stadiumdb.com and stadiony.net.
//
// It fetches country listings and per-stadium detail pages, dispatches each
// detail-table row through locale-specific header alias sets, and assembles
// one immutable record per stadium. Field-level parse failures are logged
// and leave the field unset; a page missing its details table fails that one
// stadium and the batch moves on. Unrecognized headers are collected into a
// diagnostics accumulator for later inspection.
package scraper
