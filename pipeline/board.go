package pipeline

import (
	"maps"
	"slices"

	"github.com/proago/crm-engine/generic"
)

// Entity is a candidate. Date, Time and Comment describe the entity's
// appointment in its current stage.
type Entity struct {
	ID      generic.EntityID `json:"id"`
	Name    string           `json:"name"`
	Phone   string           `json:"phone,omitempty"`
	Email   string           `json:"email,omitempty"`
	Source  string           `json:"source,omitempty"`
	Calls   int              `json:"calls"`
	Date    string           `json:"date"`
	Time    string           `json:"time"`
	Comment string           `json:"comment,omitempty"`
}

// Snapshot is what an entity had in a stage when it last left it.
type Snapshot struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Comment string `json:"comment,omitempty"`
}

// Memory maps entity -> stage -> last snapshot in that stage.
type Memory map[generic.EntityID]map[Stage]Snapshot

// Board holds each stage's entities in order, plus the stage memory.
type Board struct {
	Lanes  map[Stage][]Entity `json:"stages"`
	Memory Memory             `json:"memory"`
}

func NewBoard() Board {
	b := Board{Lanes: make(map[Stage][]Entity, len(Stages)), Memory: Memory{}}
	for _, st := range Stages {
		b.Lanes[st] = []Entity{}
	}
	return b
}

// Clone returns a deep copy. A board decoded with missing lanes gets empty ones.
func (b Board) Clone() Board {
	out := NewBoard()
	for st, lane := range b.Lanes {
		out.Lanes[st] = slices.Clone(lane)
		if out.Lanes[st] == nil {
			out.Lanes[st] = []Entity{}
		}
	}
	for id, stages := range b.Memory {
		out.Memory[id] = maps.Clone(stages)
	}
	return out
}

// Lane returns a copy of the entities in stage.
func (b Board) Lane(st Stage) []Entity {
	return slices.Clone(b.Lanes[st])
}

// Locate finds the stage holding id.
func (b Board) Locate(id generic.EntityID) (Stage, Entity, bool) {
	for _, st := range Stages {
		if i := indexOf(b.Lanes[st], id); i >= 0 {
			return st, b.Lanes[st][i], true
		}
	}
	return "", Entity{}, false
}

// Remembered returns the snapshot of id in stage, if any.
func (b Board) Remembered(id generic.EntityID, st Stage) (Snapshot, bool) {
	snap, ok := b.Memory[id][st]
	return snap, ok
}

// Count returns the number of entities in each stage.
func (b Board) Count() map[Stage]int {
	out := make(map[Stage]int, len(Stages))
	for _, st := range Stages {
		out[st] = len(b.Lanes[st])
	}
	return out
}

func indexOf(lane []Entity, id generic.EntityID) int {
	return slices.IndexFunc(lane, func(e Entity) bool { return e.ID == id })
}
