//go:build !vectordebug

package vector

// checks enables contract assertions. Build with -tags vectordebug to turn
// them on.
const checks = false
