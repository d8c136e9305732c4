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

	"github.com/consensys/go-hipmem/pkg/codec"
	"github.com/xuri/excelize/v2"
)

// SHEET is the name of the worksheet holding the trace.
const SHEET = "trace"

// Orientation determines how timestamps are laid out in a workbook.
type Orientation string

const (
	// Vertical places one timestamp per row, below a header row.
	Vertical Orientation = "vertical"
	// Horizontal places one timestamp per column, right of a header column.
	Horizontal Orientation = "horizontal"
)

// ParseOrientation checks a configured orientation.
func ParseOrientation(name string) (Orientation, error) {
	switch Orientation(name) {
	case Vertical, Horizontal:
		return Orientation(name), nil
	}
	//
	return "", codec.NewConfigError("orientation", name, string(Vertical), string(Horizontal))
}

// Background colours for the header and for each group.
var (
	headerFill = "#BFBFBF"
	groupFill  = map[Group]string{
		GroupTime:      "#F2F2F2",
		GroupInput:     "#C6EFCE",
		GroupDecoder:   "#E4DFEC",
		GroupStore:     "#FFEB9C",
		GroupEncoder:   "#DDEBF7",
		GroupOutput:    "#BDD7EE",
		GroupOperation: "#F8CBAD",
	}
)

// Workbook lays a table out in a new workbook.
func Workbook(table Table, orientation Orientation) (*excelize.File, error) {
	file := excelize.NewFile()
	//
	if err := file.SetSheetName(file.GetSheetName(0), SHEET); err != nil {
		file.Close()
		return nil, err
	}
	//
	header, err := fillStyle(file, headerFill, true)
	if err != nil {
		file.Close()
		return nil, err
	}
	// Cell (i,j) is the jth column of the ith row, where row 0 is the header.
	cell := func(i int, j int) (string, error) {
		if orientation == Horizontal {
			return excelize.CoordinatesToCellName(i+1, j+1)
		}
		//
		return excelize.CoordinatesToCellName(j+1, i+1)
	}
	//
	for j, name := range table.Header {
		style, err := fillStyle(file, groupFill[table.Groups[j]], false)
		if err != nil {
			file.Close()
			return nil, err
		}
		//
		if err := setCell(file, cell, 0, j, name, header); err != nil {
			file.Close()
			return nil, err
		}
		//
		for i, row := range table.Rows {
			var value any = row[j]
			// Keep time numeric so it sorts and plots.
			if table.Groups[j] == GroupTime {
				value = table.Times[i]
			}
			//
			if err := setCell(file, cell, i+1, j, value, style); err != nil {
				file.Close()
				return nil, err
			}
		}
	}
	//
	return file, nil
}

// WriteExcel writes a table as an xlsx workbook.
func WriteExcel(w io.Writer, table Table, orientation Orientation) error {
	file, err := Workbook(table, orientation)
	if err != nil {
		return err
	}
	//
	defer file.Close()
	//
	return file.Write(w)
}

func setCell(file *excelize.File, cell func(int, int) (string, error), i int, j int, value any, style int) error {
	name, err := cell(i, j)
	if err != nil {
		return err
	} else if err := file.SetCellValue(SHEET, name, value); err != nil {
		return err
	}
	//
	return file.SetCellStyle(SHEET, name, name, style)
}

func fillStyle(file *excelize.File, colour string, bold bool) (int, error) {
	border := make([]excelize.Border, 0, 4)
	for _, side := range []string{"left", "right", "top", "bottom"} {
		border = append(border, excelize.Border{Type: side, Color: "#000000", Style: 1})
	}
	//
	return file.NewStyle(&excelize.Style{
		Border:    border,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colour}, Pattern: 1},
		Font:      &excelize.Font{Bold: bold},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}
