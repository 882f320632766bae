package response

import (
	"encoding/json"
	"time"
)

// Resp is the envelope every JSON endpoint answers with. An error_code of
// zero means success; non-zero mirrors the HTTP status or a domain code.
// Failure envelopes echo the request id so a client report can be matched
// to its log lines.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// Date marshals as DateFormat in local time. Day-granularity values such
// as task due dates use it so clients never see a spurious midnight
// timestamp.
type Date time.Time

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Local().Format(DateFormat))
}

// DateTime marshals as DateTimeFormat in local time.
type DateTime time.Time

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Local().Format(DateTimeFormat))
}
