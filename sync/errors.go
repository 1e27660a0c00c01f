// ABOUTME: Sentinel errors shared by the importers
// ABOUTME: Callers compare with errors.Is
package sync

import "errors"

// ErrNotAuthenticated is returned when an import runs without a signed-in user.
var ErrNotAuthenticated = errors.New("not authenticated")
