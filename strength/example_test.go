package strength_test

import (
	"fmt"

	"github.com/MrEthical07/goUX/strength"
)

func ExampleClassify() {
	for _, pw := range []string{"abc", "abcdefgH", "Abcdefg1!"} {
		res := strength.Classify(pw)
		fmt.Println(res.Score, res.Label)
	}
	// Output:
	// 0 Weak
	// 2 Medium
	// 4 Strong
}
