// Package report turns Mappings into output.
//
// Reporter is the main entry point: it asks a Supplier for a Mapping and
// hands it to a Writer. Writers exist for different output formats:
//   - LineWriter: one `Task: "<task>" -> Series: "<series>"` line per entry
//   - JSONWriter: the entries as a JSON array
//   - MarkdownWriter: tasks grouped by series as a Markdown document
//
// Writers never modify the Mapping they are given.
package report
