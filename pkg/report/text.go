// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package report

import (
	"io"

	"github.com/consensys/go-hipmem/pkg/util/termio"
)

// TextOptions controls how a table is printed as text.
type TextOptions struct {
	// Colour cells according to their group
	AnsiEscapes bool
	// Upper bound on the width of any column (0 means unbounded)
	MaxWidth uint
}

// WriteText prints a table as boxed text.
func WriteText(w io.Writer, table Table, opts TextOptions) error {
	tp := termio.NewTablePrinter(table.Width(), table.Height()+1)
	tp.SetRow(0, table.Header...)
	//
	for i, row := range table.Rows {
		tp.SetRow(uint(i+1), row...)
	}
	//
	if opts.MaxWidth > 0 {
		tp.SetMaxWidths(opts.MaxWidth)
	}
	//
	tp.AnsiEscapes(opts.AnsiEscapes)
	//
	if opts.AnsiEscapes {
		for col, group := range table.Groups {
			tp.SetEscape(uint(col), 0, termio.BoldAnsiEscape())
			//
			escape, ok := groupEscape(group)
			if !ok {
				continue
			}
			//
			for row := uint(1); row <= table.Height(); row++ {
				tp.SetEscape(uint(col), row, escape)
			}
		}
	}
	//
	return tp.Print(w)
}

func groupEscape(group Group) (termio.AnsiEscape, bool) {
	var colour uint
	//
	switch group {
	case GroupInput:
		colour = termio.TERM_GREEN
	case GroupDecoder:
		colour = termio.TERM_MAGENTA
	case GroupStore:
		colour = termio.TERM_YELLOW
	case GroupEncoder:
		colour = termio.TERM_CYAN
	case GroupOutput:
		colour = termio.TERM_BLUE
	case GroupOperation:
		colour = termio.TERM_RED
	default:
		return termio.AnsiEscape{}, false
	}
	//
	return termio.NewAnsiEscape().FgColour(colour), true
}
