package tools

import (
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"

	"github.com/gatehouse0/gatehouse/internal/manual"
)

// PestStatusInput is the input schema for the pest_status tool.
type PestStatusInput struct {
	Pest  string `json:"pest" jsonschema_description:"Pest or disease, as a Table 1 code (QFF) or common name (Queensland Fruit Fly)"`
	State string `json:"state" jsonschema_description:"Australian state or territory to check, as a code or a full name"`
}

// PestStatus reports whether a Table 1 pest is recorded as present in a
// state or territory.
func (q *Quarantine) PestStatus(ctx *ai.ToolContext, input PestStatusInput) (Result, error) {
	q.logger.Info("PestStatus called", "pest", input.Pest, "state", input.State)

	if strings.TrimSpace(input.Pest) == "" {
		return Result{
			Status: StatusError,
			Error: &Error{
				Code:    ErrCodeValidation,
				Message: "pest is required",
			},
		}, nil
	}

	state, err := manual.ParseState(input.State)
	if err != nil {
		return Result{
			Status: StatusError,
			Error: &Error{
				Code:    ErrCodeValidation,
				Message: fmt.Sprintf("unknown state %q", input.State),
				Details: map[string]any{"valid_states": manual.States()},
			},
		}, nil
	}

	p, err := q.store.PestByName(input.Pest)
	if err != nil {
		q.logger.Warn("PestStatus miss", "pest", input.Pest)
		return Result{
			Status: StatusError,
			Error: &Error{
				Code:    ErrCodeNotFound,
				Message: fmt.Sprintf("pest %q is not in the Table 1 key", input.Pest),
				Details: map[string]any{"known_codes": pestCodes(q.store.Pests())},
			},
		}, nil
	}

	present := p.Present(state)
	q.logger.Info("PestStatus succeeded", "pest", p.Code, "state", state, "present", present)

	return Result{
		Status: StatusSuccess,
		Data: map[string]any{
			"pest":       p.Name,
			"code":       p.Code,
			"scientific": p.Scientific,
			"state":      state,
			"present":    present,
			"status":     presenceClause(manual.PestStatus{Pest: p, Present: present}, state),
			"notes":      p.Notes,
		},
	}, nil
}

func pestCodes(pests []*manual.Pest) []manual.PestCode {
	codes := make([]manual.PestCode, len(pests))
	for i, p := range pests {
		codes[i] = p.Code
	}
	return codes
}
