// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bt

import "errors"

// Sentinel errors returned by the engine. Callers compare with errors.Is,
// following the same convention the teacher's kv package uses (a predicate
// over errors rather than typed exceptions).
var (
	ErrKeyNotFound   = errors.New("bt: key not found")
	ErrEnd           = errors.New("bt: end of index")
	ErrEntryExists   = errors.New("bt: entry already exists")
	ErrEntryNotExist = errors.New("bt: entry does not exist")
	ErrInternal      = errors.New("bt: internal error")
)

// IsNotFound reports whether err is, or wraps, ErrKeyNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// IsEnd reports whether err is, or wraps, ErrEnd.
func IsEnd(err error) bool {
	return errors.Is(err, ErrEnd)
}

// IsEntryExists reports whether err is, or wraps, ErrEntryExists.
func IsEntryExists(err error) bool {
	return errors.Is(err, ErrEntryExists)
}
