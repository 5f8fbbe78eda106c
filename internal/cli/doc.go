// Package cli implements the command-line interface for stadiums.
//
// The cli package provides the Cobra-based CLI with the dump command
// (scrape selected countries and write a JSON dump) and the countries
// command (list what can be scraped). It coordinates the scraper, storage
// and config packages.
package cli
