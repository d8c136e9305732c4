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
package codec

import "fmt"

// ConfigError signals a configuration value which is not supported, such as an
// unknown endianness or an unknown data-type tag in a recording.  A
// ConfigError is never recovered from: the user has to fix the configuration.
type ConfigError struct {
	// Name of the offending parameter
	Param string
	// Value which was given
	Value string
	// Values which would have been accepted (if known)
	Supported []string
}

// NewConfigError constructs a new configuration error.
func NewConfigError(param string, value string, supported ...string) *ConfigError {
	return &ConfigError{param, value, supported}
}

func (e *ConfigError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unsupported %s \"%s\"", e.Param, e.Value)
	}
	//
	return fmt.Sprintf("unsupported %s \"%s\" (supported: %v)", e.Param, e.Value, e.Supported)
}

// DecodeError signals that a firing position lies outside of the width of the
// population it was recorded in.
type DecodeError struct {
	// Label of the population (or column) being decoded
	Label string
	// Offending position
	Position uint
	// Expected width of the population
	Width uint
}

// NewDecodeError constructs a new decoding error.
func NewDecodeError(label string, position uint, width uint) *DecodeError {
	return &DecodeError{label, position, width}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: firing position %d outside population width %d", e.Label, e.Position, e.Width)
}
