//go:build vectordebug

package vector

const checks = true
