package route

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// InitContext provides the context for store initialization guards.
type InitContext struct {
	DeclaredRoutes int
	Capacities     []int64
}

// IndexContext provides the context for single-route guards.
type IndexContext struct {
	RouteIndex int64 // 1-based
	RouteCount int
}

// RangeContext provides the context for range query guards.
type RangeContext struct {
	FromRoute  int64 // 1-based, inclusive
	ToRoute    int64 // 1-based, inclusive
	RouteCount int
}

// CanInitialize evaluates whether a store can be seeded with the given capacities.
// Rule: the capacity count must match the declared route count and no capacity may be negative.
func CanInitialize(ctx InitContext) GuardResult {
	if len(ctx.Capacities) != ctx.DeclaredRoutes {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("route count mismatch: declared %d routes, got %d capacities", ctx.DeclaredRoutes, len(ctx.Capacities)),
		}
	}
	for i, c := range ctx.Capacities {
		if c < 0 {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("route %d has negative initial capacity %d", i+1, c),
			}
		}
	}
	return GuardResult{Allowed: true}
}

// CanAccessRoute evaluates whether a route index addresses an existing route.
// Rule: the index must lie in [1, RouteCount].
func CanAccessRoute(ctx IndexContext) GuardResult {
	if !inBounds(ctx.RouteIndex, ctx.RouteCount) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("route %d out of range [1, %d]", ctx.RouteIndex, ctx.RouteCount),
		}
	}
	return GuardResult{Allowed: true}
}

// CanQueryRange evaluates whether a range query can run.
// Rule: both ends must lie in [1, RouteCount]. From > To is an empty range, not an error.
func CanQueryRange(ctx RangeContext) GuardResult {
	if !inBounds(ctx.FromRoute, ctx.RouteCount) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("query start route %d out of range [1, %d]", ctx.FromRoute, ctx.RouteCount),
		}
	}
	if !inBounds(ctx.ToRoute, ctx.RouteCount) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("query end route %d out of range [1, %d]", ctx.ToRoute, ctx.RouteCount),
		}
	}
	return GuardResult{Allowed: true}
}

func inBounds(index int64, count int) bool {
	return index >= 1 && index <= int64(count)
}
