// Package network exposes a Simulation loop over WebSocket. Requests and
// responses are JSON text frames; snapshots are msgpack binary frames.
package network

import (
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/types"
)

// Request operations.
const (
	OpJoin            = "join"
	OpPlaceStructure  = "place_structure"
	OpRemoveStructure = "remove_structure"
	OpStartWave       = "start_wave"
	OpPickAugment     = "pick_augment"
	OpMove            = "move"
	OpLeave           = "leave"
)

// Request is a client call. ID makes retries idempotent: a repeated ID gets
// the cached response instead of running again.
type Request struct {
	ID string `json:"id"`
	Op string `json:"op"`

	Name        string       `json:"name,omitempty"`
	TemplateID  int          `json:"template,omitempty"`
	CellX       int          `json:"x,omitempty"`
	CellY       int          `json:"y,omitempty"`
	StructureID ecs.EntityID `json:"structure,omitempty"`
	Index       int          `json:"index,omitempty"`
	Destination *types.Vec3  `json:"destination,omitempty"`
}

// Response answers one Request.
type Response struct {
	ID    string  `json:"id"`
	OK    bool    `json:"ok"`
	Error string  `json:"error,omitempty"`
	Data  *Result `json:"data,omitempty"`
}

// Result carries the values a successful call produced.
type Result struct {
	Token       string       `json:"token,omitempty"`
	PlayerID    ecs.EntityID `json:"player,omitempty"`
	StructureID ecs.EntityID `json:"structure,omitempty"`
	AugmentID   int          `json:"augment,omitempty"`
}

func failure(id string, err error) Response {
	return Response{ID: id, Error: err.Error()}
}

func success(id string, data *Result) Response {
	return Response{ID: id, OK: true, Data: data}
}
