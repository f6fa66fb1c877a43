package application

import "expvar"

var (
	authFailures = expvar.NewMap("auth_failures")
	intake       = expvar.NewMap("message_intake")
)

func countAuthFailure(reason error) {
	switch reason {
	case ReasonUnknownEmail:
		authFailures.Add("unknown_email", 1)
	case ReasonNotVerified:
		authFailures.Add("not_verified", 1)
	case ReasonWrongPassword:
		authFailures.Add("wrong_password", 1)
	}
}
