// Package memory provides in-memory store implementations used by tests.
package memory
