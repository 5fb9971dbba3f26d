// Package registry is a small thread-safe name to value table. Datasource
// readers are registered in it by file extension.
package registry
