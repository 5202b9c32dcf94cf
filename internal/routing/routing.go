// Package routing decides whether an entity operation stays local or goes
// to the remote gateway.
package routing

import "github.com/jonathan/hiretrack/internal/types"

// Route is the data path of one operation.
type Route int

// Routes
const (
	Remote Route = iota
	Local
)

func (r Route) String() string {
	if r == Local {
		return "local"
	}
	return "remote"
}

// Resolve returns Local when the actor is of the distinguished class or the
// entity id was generated client side, and Remote otherwise. An empty id
// resolves on the actor alone.
func Resolve(actor types.User, entityID string) Route {
	if actor.IsDistinguished() || types.HasLocalPrefix(entityID) {
		return Local
	}
	return Remote
}
