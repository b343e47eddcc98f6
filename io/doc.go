// Package io provides the byte stream ports attached to the Sigma16 trap
// I/O codes.
package io
