/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "log/slog"

// Config carries the knobs used to build an Accessor.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Strategy selects the accessor strategy.
	Strategy Kind

	// CoercionCacheSize bounds the number of memoized conversion plans.
	CoercionCacheSize int

	// Logger receives debug records about accessor builds. Nil discards.
	Logger *slog.Logger
}
