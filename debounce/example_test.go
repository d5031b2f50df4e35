package debounce_test

import (
	"fmt"
	"time"

	"github.com/MrEthical07/goUX/debounce"
	"github.com/MrEthical07/goUX/internal/clock"
)

// ExampleNew shows a burst of calls collapsing into one.
func ExampleNew() {
	clk := clock.NewFake(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	d := debounce.New(500*time.Millisecond, func(q string) { fmt.Println(q) }, debounce.WithClock(clk))

	d.Call("p")
	clk.Advance(100 * time.Millisecond)
	d.Call("pa")
	clk.Advance(100 * time.Millisecond)
	d.Call("pas")
	clk.Advance(500 * time.Millisecond)
	// Output: pas
}
