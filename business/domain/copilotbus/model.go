package copilotbus

import (
	"time"

	"github.com/invopop/jsonschema"
)

// TurnRole identifies who authored a conversation turn.
type TurnRole string

// Set of turn roles.
const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// Turn is one message of a conversation. Turns are supplied by the caller on
// every request and never stored here.
type Turn struct {
	ID        string
	Role      TurnRole
	Content   string
	Timestamp time.Time
}

// Message is one staff request: the new utterance plus the prior turns in
// their original order.
type Message struct {
	Text    string
	History []Turn
}

// Result is the reply to a message. Action names the tool that ran, empty
// when the reply is plain text.
type Result struct {
	Message string
	Action  string
}

// Invocation is a tool call proposed by the recognizer. Arguments is the raw
// JSON object the recognizer produced and is untrusted.
type Invocation struct {
	Name      string
	Arguments string
}

// Decision is what the recognizer returned for a turn: free text, calls, or
// neither.
type Decision struct {
	Text  string
	Calls []Invocation
}

// IntentRequest is everything the recognizer sees for one turn.
type IntentRequest struct {
	System string
	Turns  []Turn
	Tools  []Tool
}

// Tool describes one action the recognizer may call.
type Tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	schema      func() *jsonschema.Schema
	decode      func(args arguments) (Action, []string)
}
