package chainsdk

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/vultisig/balances/internal/chains"
)

// SolanaFetcher reads SOL and SPL token balances.
type SolanaFetcher struct {
	rpcClient *rpc.Client
	native    chains.NativeAsset
}

func NewSolanaFetcher(rpcClient *rpc.Client) *SolanaFetcher {
	return &SolanaFetcher{
		rpcClient: rpcClient,
		native:    chains.MustLookup(chains.Solana).Native,
	}
}

func (f *SolanaFetcher) Ecosystem() chains.Ecosystem {
	return chains.SVM
}

func (f *SolanaFetcher) NativeBalance(ctx context.Context, address string) (Balance, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("solana: invalid address: %w", err)
	}

	res, err := f.rpcClient.GetBalance(ctx, owner, rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("solana: failed to get balance: %w", err)
	}
	return NewNativeAmount(f.native, new(big.Int).SetUint64(res.Value)), nil
}

func (f *SolanaFetcher) TokenBalance(ctx context.Context, address string, token Token) (Balance, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("solana: invalid address: %w", err)
	}
	mint, err := solana.PublicKeyFromBase58(token.Contract)
	if err != nil {
		return nil, fmt.Errorf("solana: invalid mint: %w", err)
	}

	tokenProgram, err := f.tokenProgram(ctx, mint)
	if err != nil {
		return nil, err
	}

	ata, _, err := FindAssociatedTokenAddress(owner, mint, tokenProgram)
	if err != nil {
		return nil, fmt.Errorf("solana: failed to derive associated token address: %w", err)
	}

	amount, err := f.tokenAccountBalance(ctx, ata)
	if err != nil {
		return nil, err
	}
	return NewTokenAmount(token, amount), nil
}

// tokenProgram returns the program owning mint: SPL Token or Token-2022.
func (f *SolanaFetcher) tokenProgram(ctx context.Context, mint solana.PublicKey) (solana.PublicKey, error) {
	accountInfo, err := f.rpcClient.GetAccountInfo(ctx, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("solana: failed to get mint account info: %w", err)
	}
	if accountInfo.Value == nil {
		return solana.PublicKey{}, fmt.Errorf("solana: mint account not found: %s", mint)
	}

	owner := accountInfo.Value.Owner
	if !owner.Equals(solana.TokenProgramID) && !owner.Equals(solana.Token2022ProgramID) {
		return solana.PublicKey{}, fmt.Errorf("solana: mint account is not owned by a token program: %s", owner)
	}
	return owner, nil
}

// tokenAccountBalance returns zero for token accounts that do not exist yet.
func (f *SolanaFetcher) tokenAccountBalance(ctx context.Context, account solana.PublicKey) (*big.Int, error) {
	res, err := f.rpcClient.GetTokenAccountBalance(ctx, account, rpc.CommitmentFinalized)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) || strings.Contains(err.Error(), "could not find account") {
			return big.NewInt(0), nil
		}
		return nil, fmt.Errorf("solana: failed to get token balance: %w", err)
	}

	if res.Value == nil || res.Value.Amount == "" {
		return big.NewInt(0), nil
	}

	amount, ok := new(big.Int).SetString(res.Value.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("solana: failed to parse amount %q", res.Value.Amount)
	}
	return amount, nil
}

// FindAssociatedTokenAddress derives the ATA address for any token program (SPL or Token-2022).
func FindAssociatedTokenAddress(wallet, mint, tokenProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			wallet[:],
			tokenProgram[:],
			mint[:],
		},
		solana.SPLAssociatedTokenAccountProgramID,
	)
}
