// Package utils converts loosely typed agent values (numbers sent as strings,
// "yes"/"1" booleans) into Go scalars.
package utils
