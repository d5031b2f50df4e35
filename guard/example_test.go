package guard_test

import (
	"fmt"
	"time"

	"github.com/MrEthical07/goUX/guard"
	"github.com/MrEthical07/goUX/internal/clock"
)

// ExampleGuard_Submit shows a second submit suppressed inside the cooldown.
func ExampleGuard_Submit() {
	clk := clock.NewFake(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	g := guard.New(guard.WithClock(clk))

	fmt.Println(g.Submit())
	clk.Advance(1000 * time.Millisecond)
	fmt.Println(g.Submit())
	clk.Advance(2000 * time.Millisecond)
	fmt.Println(g.Submit())
	// Output:
	// allowed
	// suppressed
	// allowed
}
