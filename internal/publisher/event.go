package publisher

import (
	"encoding/json"
	"mars-photos/internal/domain/state"
	"time"

	"github.com/google/uuid"
)

// StateEvent is the envelope every sink receives for one state a controller entered.
type StateEvent struct {
	EventID      string          `json:"eventId"`
	ControllerID string          `json:"controllerId"`
	Status       state.Status    `json:"status"`
	State        state.ViewState `json:"state"`
	OccurredAt   time.Time       `json:"occurredAt"`
}

func NewStateEvent(controllerID string, st state.ViewState) *StateEvent {
	return &StateEvent{
		EventID:      uuid.NewString(),
		ControllerID: controllerID,
		Status:       st.Status(),
		State:        st,
		OccurredAt:   time.Now().UTC(),
	}
}

func (e *StateEvent) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}
