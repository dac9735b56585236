package pid

// Project reads a member of the controller's context.
//
//	name := pid.Project(c, func(m Motor) string { return m.Name })
func Project[S Signal, C any, T any](c *Controller[S, C], get func(C) T) T {
	return get(c.Context)
}

// Mutate modifies the controller's context in place.
// For pointer context types, mutating through the pointer directly is equivalent.
func Mutate[S Signal, C any](c *Controller[S, C], set func(*C)) {
	set(&c.Context)
}
