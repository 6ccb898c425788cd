// Package report renders search results for terminals and writes the export
// file format.
package report
