// Package supplier provides the sources a Reporter obtains its Mapping from.
//
// Every source implements Supplier. File classifies the task names listed in
// one or more files, Static serves a fixed table, Store loads a saved
// snapshot, and Func adapts a plain function.
package supplier
