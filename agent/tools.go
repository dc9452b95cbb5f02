package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/openvest/vestbook"
	"github.com/openvest/vestbook/renderer"
)

// Function is one callable ledger query exposed to the model.
type Function interface {
	// Declaration declares this function to the model.
	Declaration() *genai.FunctionDeclaration
	// Call performs the call.
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// Library is the set of functions the assistant may call.
type Library []Function

// Declarations lists the declarations of every function in the library.
func (l Library) Declarations() []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(l))
	for _, f := range l {
		out = append(out, f.Declaration())
	}
	return out
}

// Call dispatches a model function call to the matching function.
func (l Library) Call(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	for _, f := range l {
		if f.Declaration().Name == call.Name {
			return f.Call(ctx, call.ID, call.Args)
		}
	}
	return &genai.FunctionResponse{
		ID:   call.ID,
		Name: call.Name,
		Response: map[string]any{
			"error": fmt.Sprintf("unknown function %s", call.Name),
		},
	}
}

// NewLedgerLibrary exposes read-only queries over state. The state is a
// replayed snapshot: the assistant observes the ledger as of the last
// applied operation.
func NewLedgerLibrary(state *vestbook.State) Library {
	return Library{
		scheduleFn{state},
		votesFn{state},
		reviewFn{state},
	}
}

func markerArg(args map[string]any, name string) (uint64, bool) {
	// genai delivers JSON numbers as float64.
	v, ok := args[name].(float64)
	if !ok || v < 0 {
		return 0, false
	}
	return uint64(v), true
}

func stringArg(args map[string]any, name string) (string, bool) {
	v, ok := args[name].(string)
	return v, ok
}

func errResponse(id, name, format string, a ...any) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID: id, Name: name,
		Response: map[string]any{"error": fmt.Sprintf(format, a...)},
	}
}

type scheduleFn struct{ state *vestbook.State }

func (scheduleFn) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "get_schedule",
		Description: "Return a release schedule with its matured and releasable amounts at a marker.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"asset":       {Type: genai.TypeString, Description: "Asset identifier."},
				"beneficiary": {Type: genai.TypeString, Description: "Beneficiary identifier."},
				"marker":      {Type: genai.TypeNumber, Description: "Marker to evaluate maturity at."},
			},
			Required: []string{"asset", "beneficiary", "marker"},
		},
	}
}

func (f scheduleFn) Call(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
	asset, _ := stringArg(args, "asset")
	beneficiary, _ := stringArg(args, "beneficiary")
	now, ok := markerArg(args, "marker")
	if !ok {
		return errResponse(id, "get_schedule", "marker must be a non-negative number")
	}
	sched, found := f.state.Schedules.Get(vestbook.ScheduleKey{Asset: asset, Beneficiary: beneficiary})
	if !found {
		return errResponse(id, "get_schedule", "no schedule for asset %s beneficiary %s", asset, beneficiary)
	}
	return &genai.FunctionResponse{
		ID: id, Name: "get_schedule",
		Response: map[string]any{
			"total":      sched.Total.String(),
			"released":   sched.Released.String(),
			"start":      sched.Start,
			"duration":   sched.Duration,
			"matured":    sched.MaturedAt(now).String(),
			"releasable": sched.ReleasableAt(now).String(),
		},
	}
}

type votesFn struct{ state *vestbook.State }

func (votesFn) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "get_votes",
		Description: "Return an account's balance for an asset, current or at a past marker.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"asset":     {Type: genai.TypeString, Description: "Asset identifier."},
				"account":   {Type: genai.TypeString, Description: "Account identifier."},
				"timepoint": {Type: genai.TypeNumber, Description: "Optional past marker; omit for the current value."},
			},
			Required: []string{"asset", "account"},
		},
	}
}

func (f votesFn) Call(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
	asset, _ := stringArg(args, "asset")
	account, _ := stringArg(args, "account")
	if timepoint, ok := markerArg(args, "timepoint"); ok {
		value, err := f.state.Book.PastVotes(asset, account, timepoint)
		if err != nil {
			return errResponse(id, "get_votes", "%v", err)
		}
		return &genai.FunctionResponse{
			ID: id, Name: "get_votes",
			Response: map[string]any{"value": value.String(), "timepoint": timepoint},
		}
	}
	return &genai.FunctionResponse{
		ID: id, Name: "get_votes",
		Response: map[string]any{"value": f.state.Book.Votes(asset, account).String()},
	}
}

type reviewFn struct{ state *vestbook.State }

func (reviewFn) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "review",
		Description: "Return a markdown report of every schedule's state at a marker.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"marker": {Type: genai.TypeNumber, Description: "Marker to evaluate maturity at."},
			},
			Required: []string{"marker"},
		},
	}
}

func (f reviewFn) Call(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
	now, ok := markerArg(args, "marker")
	if !ok {
		return errResponse(id, "review", "marker must be a non-negative number")
	}
	return &genai.FunctionResponse{
		ID: id, Name: "review",
		Response: map[string]any{
			"report": renderer.Review(vestbook.NewReview(f.state, now)),
		},
	}
}
