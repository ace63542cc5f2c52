package domain

import "time"

// Command names as they appear in replies and metrics labels.
const (
	CmdPing = "ping"
	CmdEcho = "echo"
	CmdSet  = "set"
	CmdGet  = "get"
	CmdDel  = "del"
)

// Command is a parsed client command. The set of implementations is closed;
// consumers switch over the concrete types.
type Command interface {
	// Name returns the lower-case command name.
	Name() string
	command()
}

// Ping checks liveness. A nil Message replies PONG.
type Ping struct {
	Message []byte
}

// Echo replies with Message.
type Echo struct {
	Message []byte
}

// Set stores Value under Key. A zero ExpiresAt means the entry never expires.
type Set struct {
	Key       string
	Value     []byte
	ExpiresAt time.Time
}

// Get reads the value stored under Key.
type Get struct {
	Key string
}

// Del removes Keys and reports how many existed.
type Del struct {
	Keys []string
}

func (Ping) Name() string { return CmdPing }
func (Echo) Name() string { return CmdEcho }
func (Set) Name() string { return CmdSet }
func (Get) Name() string { return CmdGet }
func (Del) Name() string { return CmdDel }

func (Ping) command() {}
func (Echo) command() {}
func (Set) command() {}
func (Get) command() {}
func (Del) command() {}
