//go:build cblas

package vector

import (
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/netlib/blas/netlib"
)

// Builds with -tags cblas route all blas32 calls through the system CBLAS.
func init() {
	blas32.Use(netlib.Implementation{})
}
