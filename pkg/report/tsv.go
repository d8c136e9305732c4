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

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// DataTable converts a rendered table into an etable.Table.  The time column
// is numeric, every other column holds strings.
func DataTable(table Table) *etable.Table {
	var (
		dt     = &etable.Table{}
		schema = make(etable.Schema, len(table.Header))
	)
	//
	dt.SetMetaData("name", "trace")
	//
	for i, name := range table.Header {
		if table.Groups[i] == GroupTime {
			schema[i] = etable.Column{Name: name, Type: etensor.FLOAT64}
		} else {
			schema[i] = etable.Column{Name: name, Type: etensor.STRING}
		}
	}
	//
	dt.SetFromSchema(schema, len(table.Rows))
	//
	for row, cells := range table.Rows {
		for col, cell := range cells {
			if table.Groups[col] == GroupTime {
				dt.SetCellFloatIdx(col, row, table.Times[row])
			} else {
				dt.SetCellStringIdx(col, row, cell)
			}
		}
	}
	//
	return dt
}

// WriteTSV writes a table as tab separated values with a header line.
func WriteTSV(w io.Writer, table Table) error {
	dt := DataTable(table)
	//
	if _, err := dt.WriteCSVHeaders(w, etable.Tab); err != nil {
		return err
	}
	//
	for row := 0; row < dt.Rows; row++ {
		if err := dt.WriteCSVRow(w, row, etable.Tab); err != nil {
			return err
		}
	}
	//
	return nil
}
