// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "errors"

var (
	ErrIndexExists    = errors.New("registry: index already exists")
	ErrIndexNotExists = errors.New("registry: index does not exist")
	ErrTxnNotExists   = errors.New("registry: transaction does not exist")
	ErrDeadlock       = errors.New("registry: lock acquisition timed out")
)

// IsDeadlock reports whether err is, or wraps, ErrDeadlock.
func IsDeadlock(err error) bool {
	return errors.Is(err, ErrDeadlock)
}
