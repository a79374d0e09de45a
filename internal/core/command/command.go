// Package command defines the closed set of simulation commands and
// the validation that turns a script line into one.
package command

import "github.com/example/routesim/internal/core/route"

// Tag constants identify each command variant on the wire.
const (
	TagQuery  byte = 'Q'
	TagAdd    byte = 'A'
	TagPlus   byte = 'P'
	TagCancel byte = 'C'
)

// arity is the number of integer parameters each tag takes.
var arity = map[byte]int{
	TagQuery:  3,
	TagAdd:    3,
	TagPlus:   3,
	TagCancel: 2,
}

// Command is one of Query, Add, Plus or Cancel.
type Command interface {
	Kind() byte
	isCommand()
}

// Mutation is a command that appends exactly one record to one route.
type Mutation interface {
	Command
	Change() (routeIndex int64, rec route.ChangeRecord)
}

// Query sums exposure over routes [From, To] at time At. Read-only.
type Query struct {
	From int64
	To   int64
	At   int64
}

// Add appends (At, Capacity) to Route.
type Add struct {
	Route    int64
	Capacity int64
	At       int64
}

// Plus has the same effect as Add; the script format spells it differently.
type Plus struct {
	Route    int64
	Capacity int64
	At       int64
}

// Cancel appends (At, 0) to Route.
type Cancel struct {
	Route int64
	At    int64
}

func (Query) Kind() byte  { return TagQuery }
func (Add) Kind() byte    { return TagAdd }
func (Plus) Kind() byte   { return TagPlus }
func (Cancel) Kind() byte { return TagCancel }

func (Query) isCommand()  {}
func (Add) isCommand()    {}
func (Plus) isCommand()   {}
func (Cancel) isCommand() {}

// Change returns the record Add appends.
func (c Add) Change() (int64, route.ChangeRecord) {
	return c.Route, route.ChangeRecord{Timestamp: c.At, Capacity: c.Capacity}
}

// Change returns the record Plus appends.
func (c Plus) Change() (int64, route.ChangeRecord) {
	return c.Route, route.ChangeRecord{Timestamp: c.At, Capacity: c.Capacity}
}

// Change returns the cancellation record.
func (c Cancel) Change() (int64, route.ChangeRecord) {
	return c.Route, route.ChangeRecord{Timestamp: c.At, Capacity: 0}
}

var (
	_ Mutation = Add{}
	_ Mutation = Plus{}
	_ Mutation = Cancel{}
	_ Command  = Query{}
)
