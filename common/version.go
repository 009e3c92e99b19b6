// Copyright 2024-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"fmt"
	"runtime/debug"
)

const version = "0.3.0"

// commitHash contains the current Git revision; set at build time.
var commitHash string

// Version returns the semantic version, with the VCS revision appended
// when known.
func Version() string {
	hash := commitHash
	if hash == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					hash = setting.Value
					break
				}
			}
		}
	}
	if hash == "" {
		return version
	}
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return fmt.Sprintf("%s+%s", version, hash)
}
