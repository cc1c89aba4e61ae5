package repl

import (
	"strconv"
	"strings"
)

// Command is a top-level shell command.
type Command int

// Shell commands, numbered as shown in the menu.
const (
	CmdUnknown Command = iota
	CmdAdd
	CmdView
	CmdDelete
	CmdComplete
	CmdSave
	CmdExit
)

// commandNames maps accepted inputs to commands.
var commandNames = map[string]Command{
	"1": CmdAdd, "add": CmdAdd,
	"2": CmdView, "view": CmdView,
	"3": CmdDelete, "delete": CmdDelete,
	"4": CmdComplete, "complete": CmdComplete,
	"5": CmdSave, "save": CmdSave,
	"6": CmdExit, "exit": CmdExit,
}

// ParseCommand maps a line of input to a Command. Input is trimmed and
// matched case-insensitively.
func ParseCommand(line string) (Command, bool) {
	cmd, ok := commandNames[strings.ToLower(strings.TrimSpace(line))]
	return cmd, ok
}

// ParseID parses a task ID typed at a prompt. It reports false for anything
// that is not a base-10 integer.
func ParseID(line string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, false
	}
	return id, true
}
