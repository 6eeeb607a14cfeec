// Package config holds the taskseries run configuration, the optional
// .taskseries YAML file, and the XDG directories used for the snapshot
// store.
package config
