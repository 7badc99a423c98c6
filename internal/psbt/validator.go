package psbt

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	btcpsbt "github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/wire"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/balances/internal/chains"
	"github.com/vultisig/balances/internal/utxo/address"
)

// Expected is the transfer a caller believes it is about to sign.
type Expected struct {
	From string `json:"from"`
	To   string `json:"to"`
	// Amount is compared only when set.
	Amount *int64 `json:"amount,omitempty"`
}

type Recorder interface {
	RecordValid()
	RecordRejection(reason string)
}

type nopRecorder struct{}

func (nopRecorder) RecordValid()           {}
func (nopRecorder) RecordRejection(string) {}

// Validator checks PSBTs of one UTXO chain against an expected transfer
// before signing. The first input must carry its witness UTXO.
type Validator struct {
	chain    chains.Chain
	logger   logrus.FieldLogger
	recorder Recorder
}

type Option func(*Validator)

func WithRecorder(r Recorder) Option {
	return func(v *Validator) {
		v.recorder = r
	}
}

func NewValidator(chain chains.Chain, logger logrus.FieldLogger, opts ...Option) (*Validator, error) {
	if !address.Supported(chain) {
		return nil, fmt.Errorf("psbt: unsupported chain %s", chain)
	}
	v := &Validator{
		chain:    chain,
		logger:   logger.WithField("chain", chain.String()),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Validate returns nil when psbtHex spends from expected.From and pays
// expected.To (and exactly expected.Amount when set). Any other outcome is a
// *ValidationError.
func (v *Validator) Validate(psbtHex string, expected Expected) error {
	err := v.validate(psbtHex, expected)
	if err != nil {
		v.recorder.RecordRejection(string(err.Reason))
		v.logger.WithFields(logrus.Fields{
			"severity":        "critical",
			"reason":          err.Reason,
			"psbt_hex":        psbtHex,
			"expected_from":   expected.From,
			"expected_to":     expected.To,
			"expected_amount": formatAmount(expected.Amount),
		}).WithError(err).Error("psbt validation failed")
		return err
	}
	v.recorder.RecordValid()
	return nil
}

func (v *Validator) validate(psbtHex string, expected Expected) *ValidationError {
	raw, err := hex.DecodeString(psbtHex)
	if err != nil {
		return newValidationError(ReasonMalformed, "", err)
	}
	packet, err := btcpsbt.NewFromRawBytes(bytes.NewReader(raw), false)
	if err != nil {
		return newValidationError(ReasonMalformed, "", err)
	}

	if len(packet.UnsignedTx.TxIn) == 0 || len(packet.Inputs) == 0 {
		return newValidationError(ReasonNoInputs, "", nil)
	}
	if len(packet.UnsignedTx.TxOut) == 0 {
		return newValidationError(ReasonNoOutputs, "", nil)
	}

	witnessUtxo := packet.Inputs[0].WitnessUtxo
	if witnessUtxo == nil || len(witnessUtxo.PkScript) == 0 {
		return newValidationError(ReasonMissingWitness, "input 0", nil)
	}

	from, err := address.NewFromScript(v.chain, witnessUtxo.PkScript)
	if err != nil {
		return newValidationError(ReasonUndecodableInput, "input 0", err)
	}

	toScript, err := v.expectedScript(expected.To)
	if err != nil {
		return newValidationError(ReasonRecipientMissing, expected.To, err)
	}
	var recipient *wire.TxOut
	for _, out := range packet.UnsignedTx.TxOut {
		if bytes.Equal(out.PkScript, toScript) {
			recipient = out
			break
		}
	}
	if recipient == nil {
		return newValidationError(ReasonRecipientMissing, expected.To, nil)
	}

	fromScript, err := v.expectedScript(expected.From)
	if err != nil || !bytes.Equal(fromScript, witnessUtxo.PkScript) {
		return newValidationError(ReasonMismatch, fmt.Sprintf("sender %s, expected %s", from, expected.From), err)
	}
	if expected.Amount != nil && recipient.Value != *expected.Amount {
		return newValidationError(ReasonMismatch, fmt.Sprintf("amount %d, expected %d", recipient.Value, *expected.Amount), nil)
	}
	return nil
}

// expectedScript returns the output script paying to s on the validator's
// chain.
func (v *Validator) expectedScript(s string) ([]byte, error) {
	addr, err := address.NewFromString(v.chain, strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return addr.PayToAddrScript()
}

func formatAmount(amount *int64) string {
	if amount == nil {
		return ""
	}
	return fmt.Sprintf("%d", *amount)
}
