package pid_test

import (
	"fmt"

	"github.com/markusressel/pid2go/clamping"
	"github.com/markusressel/pid2go/pid"
)

func ExampleController_Update() {
	c, err := pid.NewWithoutContext(0.0, 10.0, 0.0)
	if err != nil {
		panic(err)
	}

	for i := 0; i < 3; i++ {
		out, err := c.Update(0, 10, 0.1)
		if err != nil {
			panic(err)
		}
		fmt.Println(out)
	}
	// Output:
	// 10
	// 20
	// 30
}

func ExampleWithLimit() {
	c, err := pid.NewWithoutContext(2.0, 0.0, 0.0, pid.WithLimit(clamping.Closed(0.0, 100.0)))
	if err != nil {
		panic(err)
	}

	out, _ := c.Update(20, 80, 1)
	fmt.Println(out, c.Limit().Clamp(out))
	// Output:
	// 120 100
}

func ExampleNew_invalidGain() {
	_, err := pid.New(-1.0, 0.0, 0.0, "motor")
	fmt.Println(err)
	// Output:
	// pid: invalid argument: proportional gain must be non-negative, got -1
}
