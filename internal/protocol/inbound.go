// Package protocol defines the JSON wire messages the session layer
// exchanges with a connected client: inbound commands decoded off a
// Client.ReadMessage frame, and outbound typed messages encoded onto a
// Client.WriteMessage frame. One JSON object per frame, matching the
// gorilla/websocket text-message transport in internal/transport.
package protocol

import "encoding/json"

// Inbound is the union of every message shape a client may send. Auth
// actions arrive with Type == "auth" and an Action naming the specific
// operation; everything else arrives as a bare Cmd. A message is
// decoded into this single struct and then dispatched on whichever
// field is set, rather than maintaining a separate Go type per command
// — the command set is flat enough that a union costs less than a
// type switch over json.RawMessage would.
type Inbound struct {
	// Auth envelope.
	Type   string `json:"type,omitempty"`
	Action string `json:"action,omitempty"`

	// Non-auth command envelope.
	Cmd string `json:"cmd,omitempty"`

	// auth.login / auth.register
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Nickname string `json:"nickname,omitempty"`

	// auth.verify_token / auth.logout — also how a reconnecting client
	// resumes a session without re-entering credentials.
	Token string `json:"token,omitempty"`

	// move
	Direction string `json:"direction,omitempty"`

	// use_item / trade
	Name string `json:"name,omitempty"`

	// update_nickname reuses Nickname above.

	// forge
	Slot       string `json:"slot,omitempty"`
	Operation  string `json:"operation,omitempty"`
	AffixIndex int    `json:"affix_index,omitempty"`
}

// IsAuth reports whether the message is an auth envelope rather than a
// bare command.
func (m Inbound) IsAuth() bool {
	return m.Type == "auth"
}

// Decode parses a single client frame into an Inbound message.
func Decode(data []byte) (Inbound, error) {
	var m Inbound
	err := json.Unmarshal(data, &m)
	return m, err
}
