package game

import "fmt"

// Command is a decoded input sampled for one tick.
//
// MoveLeft and MoveRight are held commands: the host sends them on every
// tick the key is down. SoftDropOn and SoftDropOff set and clear the held
// soft drop. The rest are edge events sent once per press.
type Command int

const (
	MoveLeft Command = iota + 1
	MoveRight
	RotateCW
	SoftDropOn
	SoftDropOff
	TogglePause
	ToggleMusic
	Quit
)

var commandNames = map[Command]string{
	MoveLeft:    "move-left",
	MoveRight:   "move-right",
	RotateCW:    "rotate",
	SoftDropOn:  "soft-drop-on",
	SoftDropOff: "soft-drop-off",
	TogglePause: "pause",
	ToggleMusic: "music",
	Quit:        "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// input is the per-tick digest of a command batch.
type input struct {
	left, right bool
	rotate      bool
	softDropOn  bool
	softDropOff bool
	pause       bool
	music       bool
	quit        bool
}

func digest(cmds []Command) input {
	var in input
	for _, c := range cmds {
		switch c {
		case MoveLeft:
			in.left = true
		case MoveRight:
			in.right = true
		case RotateCW:
			in.rotate = true
		case SoftDropOn:
			in.softDropOn = true
		case SoftDropOff:
			in.softDropOff = true
		case TogglePause:
			// Two presses inside one tick cancel out.
			in.pause = !in.pause
		case ToggleMusic:
			in.music = !in.music
		case Quit:
			in.quit = true
		}
	}
	return in
}
