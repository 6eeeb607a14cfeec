// Package main provides the entry point for the taskseries CLI.
//
// taskseries maps task names to the model series they belong to and
// reports the mapping, one line per task:
//
//	Task: "<task>" -> Series: "<series>"
//
// Usage:
//
//	taskseries                      # report tasks.txt or the config file's tasks
//	taskseries report a.txt b.txt   # report the given task lists
//	taskseries group in.txt out.md  # grouped Markdown report
//	taskseries tables --kind task   # format a raw task log
//
// See --help for all available options.
package main

// main is the entry point for taskseries.
func main() {
	Execute()
}
