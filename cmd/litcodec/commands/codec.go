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

package commands

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erigontech/isoltest/literal"
)

func newEncodeCmd() *cobra.Command {
	var withTags bool
	cmd := &cobra.Command{
		Use:   "encode [literal list]",
		Short: "Print the hex encoding of a literal list",
		Example: `  litcodec encode '1, -1, true, "abc"'
  echo 'keccak256(1)' | litcodec encode --tags`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputs(cmd, args)
			if err != nil {
				return err
			}
			for _, text := range lines {
				data, tags, err := literal.Encode(text)
				if err != nil {
					return fmt.Errorf("%q: %w", text, err)
				}
				printf(cmd.OutOrStdout(), "0x%x\n", data)
				if withTags {
					for _, t := range tags {
						printf(cmd.OutOrStdout(), "  %s\n", t)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withTags, "tags", false, "also print the layout tag of every literal")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var like string
	cmd := &cobra.Command{
		Use:   "decode [hex]",
		Short: "Render encoded bytes as a literal list",
		Long: `Render encoded bytes as a literal list. Without --like the bytes are shown
as hex words; with --like they are laid out like the given literal list.`,
		Example: `  litcodec decode 0x$(printf '%064x' 5) --like 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tags literal.Tags
			if like != "" {
				var err error
				if _, tags, err = literal.Encode(like); err != nil {
					return fmt.Errorf("--like: %w", err)
				}
			}
			lines, err := inputs(cmd, args)
			if err != nil {
				return err
			}
			for _, line := range lines {
				data, err := hex.DecodeString(strings.TrimPrefix(strings.ReplaceAll(line, " ", ""), "0x"))
				if err != nil {
					return fmt.Errorf("%q: %w", line, err)
				}
				text, err := literal.RenderChecked(data, tags)
				printf(cmd.OutOrStdout(), "%s\n", text)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&like, "like", "", "literal list whose layout the output follows")
	return cmd
}

func newCanonicalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canonical [literal list]",
		Short: "Normalise a literal list the way expectations are rewritten",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputs(cmd, args)
			if err != nil {
				return err
			}
			for _, text := range lines {
				out, err := literal.Canonical(text)
				if err != nil {
					return fmt.Errorf("%q: %w", text, err)
				}
				printf(cmd.OutOrStdout(), "%s\n", out)
			}
			return nil
		},
	}
}
