// Package model defines the data structures shared by taskseries packages.
//
// This package contains the following main types:
//   - Entry: a single (task, series) pair
//   - Mapping: the ordered, key-unique collection of Entries
//   - SeriesGroup: the tasks that belong to one model series
//
// Suppliers build Mappings, the report package reads them and the database
// package persists them. Readers never mutate a Mapping they are given.
package model
