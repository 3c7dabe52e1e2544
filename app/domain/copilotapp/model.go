package copilotapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus"
)

// Turn is a prior message of the conversation as the client keeps it.
type Turn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role" validate:"required,oneof=user assistant"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage is a staff request to the copilot.
type NewMessage struct {
	Message string `json:"message" validate:"required"`
	Context []Turn `json:"context" validate:"omitempty,dive"`
}

// Decode implements the web.Decoder interface.
func (app *NewMessage) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewMessage) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusMessage(app NewMessage) copilotbus.Message {
	history := make([]copilotbus.Turn, len(app.Context))
	for i, t := range app.Context {
		history[i] = copilotbus.Turn{
			ID:        t.ID,
			Role:      copilotbus.TurnRole(t.Role),
			Content:   t.Content,
			Timestamp: t.Timestamp,
		}
	}

	return copilotbus.Message{
		Text:    app.Message,
		History: history,
	}
}

// Reply is the copilot answer.
type Reply struct {
	Message string `json:"message"`
}

// Encode implements the web.Encoder interface.
func (app Reply) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// Tool describes a callable action for clients that list them.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
}

// Tools is the registry as served to clients.
type Tools []Tool

// Encode implements the web.Encoder interface.
func (app Tools) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppTools(bus []copilotbus.Tool) Tools {
	app := make(Tools, len(bus))
	for i, t := range bus {
		app[i] = Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return app
}
