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

package compiler

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ledgerwatch/log/v3"

	"github.com/erigontech/isoltest/common"
)

// Cached memoises bytecode by the keccak256 hash of the source, so rerunning
// an unchanged test does not invoke the compiler again.
type Cached struct {
	inner Compiler
	cache  *lru.Cache[common.Hash, []byte]
	logger log.Logger
}

var _ Compiler = (*Cached)(nil)

func NewCached(inner Compiler, size int, logger log.Logger) (*Cached, error) {
	cache, err := lru.New[common.Hash, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: cache, logger: logger}, nil
}

func (c *Cached) Compile(ctx context.Context, source string) ([]byte, error) {
	key := common.Keccak256([]byte(source))
	if code, ok := c.cache.Get(key); ok {
		c.logger.Trace("compiler cache hit", "source", key)
		return code, nil
	}
	code, err := c.inner.Compile(ctx, source)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, code)
	return code, nil
}
