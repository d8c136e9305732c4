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
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-hipmem/pkg/trace"
)

// INACTIVE is the rendering of a cell in which nothing fired.
const INACTIVE = "-"

// Group identifies the part of the memory a column of the table belongs to.
// Sinks use it to pick colours.
type Group uint8

const (
	// GroupTime is the leading timestamp column.
	GroupTime Group = iota
	// GroupInput covers the input cue and content columns.
	GroupInput
	// GroupDecoder covers the one-hot decoder column.
	GroupDecoder
	// GroupStore covers the cue and content stores.
	GroupStore
	// GroupEncoder covers the binary encoder column.
	GroupEncoder
	// GroupOutput covers the output cue and content columns.
	GroupOutput
	// GroupOperation covers the begin and end columns.
	GroupOperation
)

// Table is a fully rendered trace.  Every row has exactly one cell per
// header.
type Table struct {
	Header []string
	Groups []Group
	Rows   [][]string
	// Time (ms) of each row
	Times []float64
}

// Width returns the number of columns in this table.
func (t *Table) Width() uint {
	return uint(len(t.Header))
}

// Height returns the number of rows in this table, excluding the header.
func (t *Table) Height() uint {
	return uint(len(t.Rows))
}

// Rows renders each entry of a trace as a row of strings.  The columns follow
// the order of the trace columns, preceded by the time and followed by the
// begin and end labels.
func Rows(tr *trace.Trace, params trace.Params) Table {
	var (
		n      = len(tr.Columns) + 3
		header = make([]string, 0, n)
		groups = make([]Group, 0, n)
		rows   = make([][]string, len(tr.Entries))
		times  = make([]float64, len(tr.Entries))
	)
	//
	header = append(header, "t")
	groups = append(groups, GroupTime)
	//
	for _, col := range tr.Columns {
		header = append(header, col.Label)
		groups = append(groups, groupOf(col))
	}
	//
	header = append(header, "Begin", "End")
	groups = append(groups, GroupOperation, GroupOperation)
	//
	for i, entry := range tr.Entries {
		row := make([]string, 0, n)
		row = append(row, formatTime(entry.Time))
		times[i] = entry.Time
		//
		for j, col := range tr.Columns {
			row = append(row, formatCell(col, entry.Cells[j], params))
		}
		//
		rows[i] = append(row, entry.Begin.String(), entry.End.String())
	}
	//
	return Table{header, groups, rows, times}
}

func groupOf(col trace.Column) Group {
	switch {
	case strings.HasPrefix(col.Label, "IN"):
		return GroupInput
	case strings.HasPrefix(col.Label, "OUT"):
		return GroupOutput
	case col.Kind == trace.OneHotDecoder:
		return GroupDecoder
	case col.Kind == trace.CueCode:
		return GroupEncoder
	default:
		return GroupStore
	}
}

func formatTime(time float64) string {
	return strconv.FormatFloat(time, 'f', -1, 64)
}

func formatCell(col trace.Column, cell trace.Cell, params trace.Params) string {
	if !cell.Active {
		return INACTIVE
	}
	//
	switch col.Kind {
	case trace.ContentLines:
		return formatLines(cell.Lines, col.Width)
	case trace.OneHotDecoder:
		return formatOneHot(cell.Value, params.CueSize)
	default:
		return strconv.Itoa(cell.Value)
	}
}

// Content is shown line by line with line 0 rightmost, followed by the active
// lines in descending order.
func formatLines(lines []uint, width uint) string {
	var (
		bits   = []byte(strings.Repeat("0", int(width)))
		active = make([]string, len(lines))
	)
	//
	for i, line := range lines {
		if line < width {
			bits[width-1-line] = '1'
		}
		//
		active[len(lines)-1-i] = strconv.FormatUint(uint64(line), 10)
	}
	//
	return fmt.Sprintf("%s [%s]", bits, strings.Join(active, ", "))
}

// A one-hot address is shown with slot 0 rightmost.  Values beyond the number
// of slots widen the string so the active slot is never lost.
func formatOneHot(value int, slots uint) string {
	if value < 0 {
		return INACTIVE
	}
	//
	width := max(int(slots), value+1)
	bits := []byte(strings.Repeat("0", width))
	bits[width-1-value] = '1'
	//
	return string(bits)
}
