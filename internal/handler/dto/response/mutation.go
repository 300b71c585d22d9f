package response

import (
	"roomstay-admin/internal/usecase/commands"
)

// MutationResponse wraps a settled write. LocalOnly tells the client
// the record landed in the fallback store rather than upstream, and
// Warning carries a non-fatal secondary failure (an asset upload that
// did not go through).
type MutationResponse[R any] struct {
	Record    R      `json:"record"`
	LocalOnly bool   `json:"localOnly"`
	Warning   string `json:"warning,omitempty"`
}

func FromMutation[T any, R any](res *commands.Result[T], conv func(T, bool) R) MutationResponse[R] {
	out := MutationResponse[R]{
		Record:    conv(res.Record, res.LocalOnly),
		LocalOnly: res.LocalOnly,
	}
	if res.Warning != nil {
		out.Warning = res.Warning.Error()
	}
	return out
}
