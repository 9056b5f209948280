// Package vetcase placed in testdata is a target for mindala vet in tests. It is not meant
// to be imported by anyone.
package vetcase
