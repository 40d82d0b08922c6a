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


// Package rpc runs test contracts on an external node over JSON-RPC, using
// either an IPC socket or an HTTP endpoint.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"
	"github.com/ledgerwatch/log/v3"

	"github.com/erigontech/isoltest/common"
	"github.com/erigontech/isoltest/execution"
)

var (
	ErrNoAccounts     = errors.New("node has no unlocked accounts")
	ErrDeployFailed   = errors.New("contract creation failed")
	errReceiptPending = errors.New("receipt pending")
)

// revertErrorCode is the JSON-RPC error code nodes use for reverted calls.
const revertErrorCode = 3

type Config struct {
	// Endpoint is an IPC socket path or an http(s)/ws(s) URL.
	Endpoint string
	// Sender of all transactions. Zero means the node's first account.
	Sender       gethcommon.Address
	Gas          uint64
	PollInterval time.Duration
	// Timeout bounds waiting for a single receipt.
	Timeout time.Duration
}

func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint:     endpoint,
		Gas:          10_000_000,
		PollInterval: 50 * time.Millisecond,
		Timeout:      30 * time.Second,
	}
}

type txArgs struct {
	From  gethcommon.Address  `json:"from"`
	To    *gethcommon.Address `json:"to,omitempty"`
	Gas   hexutil.Uint64      `json:"gas"`
	Value *hexutil.Big        `json:"value,omitempty"`
	Data  hexutil.Bytes       `json:"data"`
}

type receipt struct {
	TxHash          gethcommon.Hash     `json:"transactionHash"`
	Status          hexutil.Uint64      `json:"status"`
	ContractAddress *gethcommon.Address `json:"contractAddress"`
	GasUsed         hexutil.Uint64      `json:"gasUsed"`
}

type Executor struct {
	cfg      Config
	client   *rpc.Client
	logger   log.Logger
	sender   gethcommon.Address
	contract *gethcommon.Address
}

var _ execution.Executor = (*Executor)(nil)

func Dial(ctx context.Context, cfg Config, logger log.Logger) (*Executor, error) {
	client, err := rpc.DialContext(ctx, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", cfg.Endpoint, err)
	}
	e, err := NewWithClient(ctx, client, cfg, logger)
	if err != nil {
		client.Close()
		return nil, err
	}
	return e, nil
}

// NewWithClient wraps an established client, resolving the sender account
// if none is configured.
func NewWithClient(ctx context.Context, client *rpc.Client, cfg Config, logger log.Logger) (*Executor, error) {
	defaults := DefaultConfig(cfg.Endpoint)
	if cfg.Gas == 0 {
		cfg.Gas = defaults.Gas
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}

	e := &Executor{cfg: cfg, client: client, logger: logger, sender: cfg.Sender}
	if e.sender == (gethcommon.Address{}) {
		var accounts []gethcommon.Address
		if err := client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
			return nil, fmt.Errorf("eth_accounts: %w", err)
		}
		if len(accounts) == 0 {
			return nil, ErrNoAccounts
		}
		e.sender = accounts[0]
	}
	logger.Debug("rpc executor ready", "endpoint", cfg.Endpoint, "sender", e.sender)
	return e, nil
}

func NewFactory(cfg Config, logger log.Logger) execution.Factory {
	return func(ctx context.Context) (execution.Executor, error) {
		return Dial(ctx, cfg, logger)
	}
}

func (e *Executor) Deploy(ctx context.Context, code []byte) error {
	e.contract = nil
	r, err := e.transact(ctx, txArgs{From: e.sender, Gas: hexutil.Uint64(e.cfg.Gas), Data: code})
	if err != nil {
		return err
	}
	if r.Status == 0 || r.ContractAddress == nil {
		return fmt.Errorf("%w: tx %s", ErrDeployFailed, r.TxHash)
	}
	e.contract = r.ContractAddress
	e.logger.Debug("contract deployed", "address", *r.ContractAddress, "gasUsed", uint64(r.GasUsed))
	return nil
}

// Call reads the output with eth_call and then commits the same call as a
// transaction so that later calls observe its state changes.
func (e *Executor) Call(ctx context.Context, signature string, args []byte, value *uint256.Int) ([]byte, error) {
	if e.contract == nil {
		return nil, errors.New("no contract deployed")
	}
	tx := txArgs{
		From: e.sender,
		To:   e.contract,
		Gas:  hexutil.Uint64(e.cfg.Gas),
		Data: common.CallData(signature, args),
	}
	if value != nil && !value.IsZero() {
		tx.Value = (*hexutil.Big)(value.ToBig())
	}

	var out hexutil.Bytes
	if err := e.client.CallContext(ctx, &out, "eth_call", tx, "latest"); err != nil {
		if isRevert(err) {
			return nil, fmt.Errorf("%w: %s", execution.ErrReverted, err)
		}
		return nil, fmt.Errorf("eth_call %s: %w", signature, err)
	}

	r, err := e.transact(ctx, tx)
	if err != nil {
		return nil, err
	}
	if r.Status == 0 {
		return nil, fmt.Errorf("%w: tx %s", execution.ErrReverted, r.TxHash)
	}
	return out, nil
}

func (e *Executor) Close() error {
	e.client.Close()
	return nil
}

func (e *Executor) transact(ctx context.Context, tx txArgs) (*receipt, error) {
	var hash gethcommon.Hash
	if err := e.client.CallContext(ctx, &hash, "eth_sendTransaction", tx); err != nil {
		return nil, fmt.Errorf("eth_sendTransaction: %w", err)
	}
	return e.waitReceipt(ctx, hash)
}

func (e *Executor) waitReceipt(ctx context.Context, hash gethcommon.Hash) (*receipt, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = e.cfg.PollInterval
	policy.MaxInterval = 10 * e.cfg.PollInterval
	policy.MaxElapsedTime = e.cfg.Timeout

	var r *receipt
	op := func() error {
		var res *receipt
		if err := e.client.CallContext(ctx, &res, "eth_getTransactionReceipt", hash); err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		if res == nil {
			return errReceiptPending
		}
		r = res
		return nil
	}
	notify := func(err error, next time.Duration) {
		e.logger.Trace("waiting for receipt", "tx", hash, "err", err, "next", next)
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, fmt.Errorf("receipt of %s: %w", hash, err)
	}
	return r, nil
}

// isRevert recognises a revert reported by the node. Nodes without revert
// data answer with a generic error code, so the message is checked too, but
// only for errors that came back as JSON-RPC responses.
func isRevert(err error) bool {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode() == revertErrorCode || strings.Contains(rpcErr.Error(), "revert")
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return strings.Contains(dataErr.Error(), "revert")
	}
	return false
}
