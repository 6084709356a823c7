// Package matching decides which stored item an inventoried candidate describes.
//
// Service is the single entry point; each kind of candidate has its own
// criteria builder (ForComputer, ForLinked, ForVirtualMachine).
package matching
