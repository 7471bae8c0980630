package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvlike/matrix"
)

// ExampleNewCholesky demonstrates evaluating a quadratic form rᵀ·C⁻¹·r
// without materializing the inverse covariance.
func ExampleNewCholesky() {
	cov, _ := matrix.NewDenseFrom(2, 2, []float64{
		4, 2,
		2, 3,
	})
	chol, err := matrix.NewCholesky(cov)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	chisq, _ := chol.Mahalanobis([]float64{2, 1})
	fmt.Printf("chisq = %.4f\n", chisq)
	fmt.Printf("ln|C| = %.4f\n", chol.LogDet())
	// Output:
	// chisq = 1.0000
	// ln|C| = 2.0794
}

// ExampleDense_Induced shows how a covariance block is cut out of a larger
// matrix in a chosen order.
func ExampleDense_Induced() {
	full, _ := matrix.NewDenseFrom(3, 3, []float64{
		1, 0.1, 0.2,
		0.1, 2, 0.3,
		0.2, 0.3, 3,
	})
	block, _ := full.Induced([]int{2, 0}, []int{2, 0})
	fmt.Print(block)
	// Output:
	// [3, 0.2]
	// [0.2, 1]
}
