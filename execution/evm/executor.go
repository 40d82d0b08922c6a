// Copyright 2025 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.


// Package evm runs test contracts inside an in-process EVM.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm/runtime"
	"github.com/holiman/uint256"
	"github.com/ledgerwatch/log/v3"

	"github.com/erigontech/isoltest/common"
	"github.com/erigontech/isoltest/execution"
)

var errNotDeployed = errors.New("no contract deployed")

type Config struct {
	Origin   gethcommon.Address
	GasLimit uint64
	// Balance the origin account is funded with on every deployment.
	Balance *uint256.Int
}

func DefaultConfig() Config {
	return Config{
		Origin:   gethcommon.HexToAddress("0x1000000000000000000000000000000000000001"),
		GasLimit: 100_000_000,
		Balance:  new(uint256.Int).Lsh(uint256.NewInt(1), 128),
	}
}

// Executor keeps one contract in a private state. It is not safe for
// concurrent use; create one per running test.
type Executor struct {
	cfg      Config
	logger   log.Logger
	runtime  *runtime.Config
	contract gethcommon.Address
	deployed bool
}

var _ execution.Executor = (*Executor)(nil)

func New(cfg Config, logger log.Logger) *Executor {
	if cfg.GasLimit == 0 {
		cfg.GasLimit = DefaultConfig().GasLimit
	}
	if cfg.Balance == nil {
		cfg.Balance = DefaultConfig().Balance
	}
	return &Executor{cfg: cfg, logger: logger}
}

// NewFactory returns an execution.Factory producing in-process executors.
func NewFactory(cfg Config, logger log.Logger) execution.Factory {
	return func(ctx context.Context) (execution.Executor, error) {
		return New(cfg, logger), nil
	}
}

func (e *Executor) Deploy(ctx context.Context, code []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	statedb, err := state.New(types.EmptyRootHash, state.NewDatabaseForTesting())
	if err != nil {
		return fmt.Errorf("creating state: %w", err)
	}
	statedb.AddBalance(e.cfg.Origin, e.cfg.Balance, tracing.BalanceIncreaseGenesisBalance)

	e.runtime = &runtime.Config{
		Origin:      e.cfg.Origin,
		GasLimit:    e.cfg.GasLimit,
		BlockNumber: big.NewInt(1),
		Value:       new(big.Int),
		State:       statedb,
	}
	e.deployed = false

	_, addr, gasLeft, err := runtime.Create(code, e.runtime)
	if err != nil {
		return fmt.Errorf("deploying contract: %w", err)
	}
	e.contract = addr
	e.deployed = true
	e.logger.Debug("contract deployed", "address", addr, "gasUsed", e.cfg.GasLimit-gasLeft)
	return nil
}

func (e *Executor) Call(ctx context.Context, signature string, args []byte, value *uint256.Int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !e.deployed {
		return nil, errNotDeployed
	}
	if value != nil {
		e.runtime.Value = value.ToBig()
	} else {
		e.runtime.Value = new(big.Int)
	}

	ret, gasLeft, err := runtime.Call(e.contract, common.CallData(signature, args), e.runtime)
	e.logger.Trace("call executed", "signature", signature, "gasUsed", e.cfg.GasLimit-gasLeft, "err", err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", execution.ErrReverted, err)
	}
	return ret, nil
}

func (e *Executor) Close() error {
	e.runtime = nil
	e.deployed = false
	return nil
}
