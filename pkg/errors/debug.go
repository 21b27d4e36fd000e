package errors

import (
	"errors"
	"fmt"
)

// statusCarrier is implemented by errors that originate from an upstream HTTP
// response, such as the marketplace backend client's status errors.
type statusCarrier interface {
	error
	UpstreamStatus() int
	UpstreamBody() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   string `json:"upstream_body,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var carrier statusCarrier
	if errors.As(err, &carrier) {
		d.UpstreamStatus = carrier.UpstreamStatus()
		d.UpstreamBody = carrier.UpstreamBody()
	}

	return d
}
