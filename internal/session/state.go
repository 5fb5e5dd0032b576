package session

// State enumerates the screens of the session state machine.
type State int

const (
	StateSetup State = iota
	StateMainMenu
	StateGenerating
	StateManaging
	StateConfiguring
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateMainMenu:
		return "main_menu"
	case StateGenerating:
		return "generating"
	case StateManaging:
		return "managing"
	case StateConfiguring:
		return "configuring"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Event is a completed interaction that drives a state change.
type Event int

const (
	EventSetupDone Event = iota
	EventChooseGenerate
	EventChooseManage
	EventChooseConfigure
	EventChooseExit
	EventBack
)

// Next is the pure transition function of the session state machine.
// Exit is honored from every state; any other unexpected combination
// falls back to the main menu so a stray event can never wedge the
// loop.
func Next(s State, e Event) State {
	if e == EventChooseExit {
		return StateExiting
	}
	switch s {
	case StateSetup:
		if e == EventSetupDone {
			return StateMainMenu
		}
	case StateMainMenu:
		switch e {
		case EventChooseGenerate:
			return StateGenerating
		case EventChooseManage:
			return StateManaging
		case EventChooseConfigure:
			return StateConfiguring
		}
	case StateGenerating, StateManaging, StateConfiguring:
		if e == EventBack {
			return StateMainMenu
		}
	}
	return StateMainMenu
}
