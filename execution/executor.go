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


// Package execution defines how compiled test contracts are deployed and
// called.
package execution

import (
	"context"
	"errors"

	"github.com/holiman/uint256"
)

// ErrReverted is returned by Call when the transaction reverted. Any other
// error means the call could not be carried out at all.
var ErrReverted = errors.New("execution reverted")

//go:generate mockgen -destination=./executor_mock.go -package=execution . Executor
type Executor interface {
	// Deploy replaces the current contract with a fresh instance created
	// from code.
	Deploy(ctx context.Context, code []byte) error
	// Call invokes signature on the deployed contract with ABI encoded args
	// and returns the raw return data.
	Call(ctx context.Context, signature string, args []byte, value *uint256.Int) ([]byte, error)
	Close() error
}

// Factory creates an independent Executor, one per concurrently running test.
type Factory func(ctx context.Context) (Executor, error)
