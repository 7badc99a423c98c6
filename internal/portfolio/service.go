package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vultisig/balances/internal/balance"
)

var ErrUnknownChain = errors.New("unknown chain")

// Portfolio is the native balance of an address plus whichever requested
// token balances could be fetched.
type Portfolio struct {
	Chain   string               `json:"chain"`
	Network string               `json:"network"`
	Address string               `json:"address"`
	Native  balance.RawBalance   `json:"native"`
	Tokens  []balance.RawBalance `json:"tokens"`
}

// Service routes balance requests to the fetcher registered for a chain.
type Service struct {
	mu       sync.RWMutex
	fetchers map[string]balance.Fetcher
	logger   logrus.FieldLogger
}

func NewService(logger logrus.FieldLogger) *Service {
	return &Service{
		fetchers: make(map[string]balance.Fetcher),
		logger:   logger.WithField("pkg", "portfolio.Service"),
	}
}

// Register replaces any fetcher previously registered for f.Chain().
func (s *Service) Register(f balance.Fetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchers[key(f.Chain())] = f
}

func (s *Service) Fetcher(chain string) (balance.Fetcher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fetchers[key(chain)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChain, chain)
	}
	return f, nil
}

// Chains returns the registered chain aliases in sorted order.
func (s *Service) Chains() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]string, 0, len(s.fetchers))
	for c := range s.fetchers {
		res = append(res, c)
	}
	sort.Strings(res)
	return res
}

// GetBalances fails if the native balance cannot be fetched. Token balances
// are best effort.
func (s *Service) GetBalances(
	ctx context.Context,
	chain, address string,
	tokens []balance.TokenInfo,
) (Portfolio, error) {
	f, err := s.Fetcher(chain)
	if err != nil {
		return Portfolio{}, err
	}

	native, err := f.GetNativeBalance(ctx, address)
	if err != nil {
		return Portfolio{}, fmt.Errorf("failed to get %s balance of %s: %w", f.Chain(), address, err)
	}

	tokenBalances, err := f.GetTokenBalances(ctx, address, tokens)
	if err != nil {
		return Portfolio{}, fmt.Errorf("failed to get %s token balances of %s: %w", f.Chain(), address, err)
	}
	if dropped := len(tokens) - len(tokenBalances); dropped > 0 {
		s.logger.WithFields(logrus.Fields{
			"chain":     f.Chain(),
			"address":   address,
			"requested": len(tokens),
			"dropped":   dropped,
		}).Info("partial token balances")
	}

	return Portfolio{
		Chain:   f.Chain(),
		Network: f.Network(),
		Address: address,
		Native:  native,
		Tokens:  tokenBalances,
	}, nil
}

func key(chain string) string {
	return strings.ToLower(strings.TrimSpace(chain))
}
