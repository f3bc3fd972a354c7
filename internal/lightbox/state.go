package lightbox

// State is the whole mutable state of the viewer: which item is addressed
// and whether the overlay is up. Owned and mutated only by a Controller;
// everything else reads snapshots.
type State struct {
	Current int
	Open    bool
}

// Command is one of the closed set of instructions a Controller accepts.
// Input translation produces commands; nothing else drives the state.
type Command interface {
	isCommand()
}

type OpenCommand struct {
	Index int
}

type CloseCommand struct{}

type NextCommand struct{}

type PrevCommand struct{}

func (OpenCommand) isCommand()  {}
func (CloseCommand) isCommand() {}
func (NextCommand) isCommand()  {}
func (PrevCommand) isCommand()  {}
