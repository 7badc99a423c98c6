package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/balances/internal/balance"
	"github.com/vultisig/balances/internal/chains"
	"github.com/vultisig/balances/internal/portfolio"
	"github.com/vultisig/balances/internal/psbt"
)

type errorResponse struct {
	Error string `json:"error"`
}

type balancesRequest struct {
	Tokens []balance.TokenInfo `json:"tokens"`
}

type chainInfo struct {
	Chain     string           `json:"chain"`
	Ecosystem chains.Ecosystem `json:"ecosystem"`
	Curve     chains.Curve     `json:"curve"`
	EvmID     int64            `json:"evmId,omitempty"`
	Native    string           `json:"native"`
}

type validatePSBTRequest struct {
	PsbtHex string `json:"psbtHex"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  *int64 `json:"amount,omitempty"`
}

type validatePSBTResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"chains": len(s.balances.Chains()),
	})
}

func (s *Server) handleChains(c echo.Context) error {
	res := []chainInfo{}
	for _, alias := range s.balances.Chains() {
		info := chainInfo{Chain: alias}
		if m, ok := chains.Lookup(alias); ok {
			info.Ecosystem = m.Ecosystem
			info.Curve = m.Curve()
			info.EvmID = m.EvmID
			info.Native = m.Native.Symbol
		}
		res = append(res, info)
	}
	return c.JSON(http.StatusOK, res)
}

// handleGetBalances takes the token list as a JSON array in the tokens query
// parameter.
func (s *Server) handleGetBalances(c echo.Context) error {
	var tokens []balance.TokenInfo
	if raw := c.QueryParam("tokens"); raw != "" {
		err := json.Unmarshal([]byte(raw), &tokens)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid tokens: " + err.Error()})
		}
	}
	return s.getBalances(c, tokens)
}

func (s *Server) handlePostBalances(c echo.Context) error {
	var req balancesRequest
	err := c.Bind(&req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	return s.getBalances(c, req.Tokens)
}

func (s *Server) getBalances(c echo.Context, tokens []balance.TokenInfo) error {
	chain := c.Param("chain")
	address := c.Param("address")

	p, err := s.balances.GetBalances(c.Request().Context(), chain, address, tokens)
	if err != nil {
		if errors.Is(err, portfolio.ErrUnknownChain) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		s.logger.WithFields(logrus.Fields{
			"chain":   chain,
			"address": address,
		}).WithError(err).Error("failed to get balances")
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleValidatePSBT(c echo.Context) error {
	var req validatePSBTRequest
	err := c.Bind(&req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	err = s.validator.Validate(req.PsbtHex, psbt.Expected{
		From:   req.From,
		To:     req.To,
		Amount: req.Amount,
	})
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validatePSBTResponse{
			Valid:  false,
			Reason: string(psbt.ReasonOf(err)),
			Error:  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, validatePSBTResponse{Valid: true})
}
