package model

// CommandType enumerates the actions a player can dispatch into a puzzle
type CommandType string

const (
	CommandToggle         CommandType = "toggle"
	CommandCommit         CommandType = "commit"
	CommandClearSelection CommandType = "clear_selection"
	CommandReset          CommandType = "reset"
	CommandSwitchMode     CommandType = "switch_mode"
	CommandUndo           CommandType = "undo"
)

// Command is a single player action. Only the fields relevant to the
// command type are read.
type Command struct {
	Type     CommandType
	Position Position // CommandToggle
	Mode     Mode     // CommandSwitchMode
	Index    int      // CommandUndo
}

// ToggleCommand builds a toggle command for a cell
func ToggleCommand(col, row int) Command {
	return Command{Type: CommandToggle, Position: Position{Col: col, Row: row}}
}

// UndoCommand builds an undo command for a history index
func UndoCommand(index int) Command {
	return Command{Type: CommandUndo, Index: index}
}

// SwitchModeCommand builds a mode switch command
func SwitchModeCommand(mode Mode) Command {
	return Command{Type: CommandSwitchMode, Mode: mode}
}
