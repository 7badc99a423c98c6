package psbt

import (
	"errors"
)

// Reason names the check a PSBT failed.
type Reason string

const (
	ReasonMalformed        Reason = "malformed"
	ReasonNoInputs         Reason = "no_inputs"
	ReasonNoOutputs        Reason = "no_outputs"
	ReasonMissingWitness   Reason = "missing_witness"
	ReasonUndecodableInput Reason = "undecodable_input"
	ReasonRecipientMissing Reason = "recipient_missing"
	ReasonMismatch         Reason = "mismatch"
)

var (
	ErrMalformed        = errors.New("invalid psbt hex")
	ErrNoInputs         = errors.New("PSBT must have at least one input")
	ErrNoOutputs        = errors.New("PSBT must have at least one output")
	ErrMissingWitness   = errors.New("PSBT input is missing witness UTXO data")
	ErrUndecodableInput = errors.New("failed to derive sender address from PSBT input")
	ErrRecipientMissing = errors.New("PSBT has no output paying the expected recipient")
	ErrMismatch         = errors.New("PSBT does not match the expected transfer")
)

var sentinels = map[Reason]error{
	ReasonMalformed:        ErrMalformed,
	ReasonNoInputs:         ErrNoInputs,
	ReasonNoOutputs:        ErrNoOutputs,
	ReasonMissingWitness:   ErrMissingWitness,
	ReasonUndecodableInput: ErrUndecodableInput,
	ReasonRecipientMissing: ErrRecipientMissing,
	ReasonMismatch:         ErrMismatch,
}

// ValidationError is returned by Validator.Validate. It matches the sentinel
// of its Reason with errors.Is.
type ValidationError struct {
	Reason Reason
	Detail string
	// Cause is the underlying decode error, if any.
	Cause error
}

func newValidationError(reason Reason, detail string, cause error) *ValidationError {
	return &ValidationError{
		Reason: reason,
		Detail: detail,
		Cause:  cause,
	}
}

func (e *ValidationError) Error() string {
	msg := sentinels[e.Reason].Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	errs := []error{sentinels[e.Reason]}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// ReasonOf returns the Reason carried by err, or "" if err is not a
// ValidationError.
func ReasonOf(err error) Reason {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return ""
}
