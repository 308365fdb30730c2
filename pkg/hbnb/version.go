// Package hbnb holds release metadata for the hbnb console.
package hbnb

// Version is the current release.
const Version = "0.1.0"
