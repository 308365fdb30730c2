// Package types defines the entity model, the class registry, the
// ObjectTable and Persister interfaces, and the standard errors shared by
// the hbnb storage and console packages.
package types
