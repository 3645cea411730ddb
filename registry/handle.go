// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "github.com/oxbow-labs/btindex/bt"

// flag is a bitmask of per-handle transaction state.
type flag uint8

const (
	// flagInTxnRead is set while the handle holds its index's lock in
	// shared mode on behalf of the current transaction.
	flagInTxnRead flag = 1 << iota
	// flagInTxnWrite is set while the handle holds the lock exclusively.
	// A read-to-write upgrade clears flagInTxnRead before setting this
	// flag, so the two are never set together (see (*Handle).lockForWrite).
	flagInTxnWrite
	// flagNoGet means the cursor's validity against the index is
	// uncertain: initial state, after a scan reaches the end, or after any
	// failed Get or GetNext.
	flagNoGet
	// flagDeadlock records that this transaction already timed out
	// acquiring a lock and must not attempt to release locks on abort
	// for handles that never successfully acquired one.
	flagDeadlock
)

// opKind distinguishes the two operation-log entry shapes.
type opKind uint8

const (
	opInsert opKind = iota
	opDelete
)

// opLogEntry is one rollback-capable record of a mutation performed under
// a transaction.
type opLogEntry struct {
	kind     opKind
	key      bt.Key
	payload  []byte              // opInsert: the payload that was installed.
	detached *bt.DetachedPayloads // opDelete: what the engine detached.
}

// Handle is per-open-index client state: the trie and lock it is bound to,
// a cursor, transaction bookkeeping flags, and (while inside a
// transaction) an operation log for rollback.
type Handle struct {
	reg   *Registry
	name  string
	index *index

	cursor *bt.Cursor
	flags  flag

	txn   *Txn
	opLog []opLogEntry

	lastKey    bt.Key
	hasLastKey bool
}

// Close releases the handle. It must not be called while a transaction
// holds this handle; the caller is responsible for that ordering.
func (h *Handle) Close() {
	h.cursor = nil
}

func (h *Handle) hasFlag(f flag) bool  { return h.flags&f != 0 }
func (h *Handle) setFlag(f flag)       { h.flags |= f }
func (h *Handle) clearFlag(f flag)     { h.flags &^= f }
