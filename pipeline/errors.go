// SPDX-License-Identifier: EPL-2.0

package pipeline

import "errors"

// ErrInvalidParameter is returned by every setter for out of range values.
// The pipeline is left unchanged when it is returned.
var ErrInvalidParameter = errors.New("invalid effect parameter")
