// Package types defines the Task entity, the Backend interface used to
// persist task lists, configuration, and the standard errors shared by the
// store, the storage backends, and the command interfaces.
package types
