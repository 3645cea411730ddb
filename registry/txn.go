// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/pkg/errors"

	"github.com/oxbow-labs/btindex/metrics"
)

// Txn aggregates every handle touched by one goroutine's transaction. A
// goroutine-scoped value plays the role the source keyed off per-pthread
// state: Go has no stable thread identity, so the caller holding the *Txn
// value is what designates "the transaction owner", enforced by
// convention rather than a global registry of goroutine IDs.
type Txn struct {
	handles []*Handle
	done    bool
}

// Begin starts a new transaction. Handles join it lazily, the first time
// an operation is performed through them with this Txn.
func Begin() *Txn {
	return &Txn{}
}

func (tx *Txn) register(h *Handle) {
	// h has just acquired its lock, so a deadlock flag left over from an
	// earlier timed-out attempt no longer applies.
	h.clearFlag(flagDeadlock)
	for _, existing := range tx.handles {
		if existing == h {
			return
		}
	}
	tx.handles = append(tx.handles, h)
}

// Commit releases every lock this transaction's handles hold and discards
// their operation logs.
func (tx *Txn) Commit() error {
	if tx.done {
		return ErrTxnNotExists
	}
	tx.done = true

	for _, h := range tx.handles {
		h.opLog = nil
		h.clearFlag(flagNoGet)
		h.releaseLocks()
		h.txn = nil
	}
	metrics.GetCounter("btindex_txn_commit_total").Add(1)
	return nil
}

// Abort walks every handle's operation log, most-recent-first, inverting
// each entry, then releases locks (unless the handle observed a deadlock,
// in which case it never held one to release).
func (tx *Txn) Abort() error {
	if tx.done {
		return ErrTxnNotExists
	}
	tx.done = true

	var firstErr error
	for _, h := range tx.handles {
		for i := len(h.opLog) - 1; i >= 0; i-- {
			entry := h.opLog[i]
			var err error
			switch entry.kind {
			case opInsert:
				_, err = h.index.trie.Delete(entry.key, entry.payload)
			case opDelete:
				err = h.index.trie.Reinsert(entry.detached)
			}
			if err != nil {
				logger.Error("rollback failed", "index", h.name, "err", err)
				if firstErr == nil {
					firstErr = errors.Wrap(err, "abort rollback")
				}
				break
			}
		}
		h.opLog = nil
		h.releaseLocks()
		h.flags = flagNoGet
		h.txn = nil
	}

	metrics.GetCounter("btindex_txn_abort_total").Add(1)
	return firstErr
}

// releaseLocks drops whatever lock mode h currently holds, unless a
// deadlock was already observed on this handle (in which case no lock was
// ever successfully acquired).
func (h *Handle) releaseLocks() {
	if h.hasFlag(flagDeadlock) {
		h.flags &^= flagDeadlock
		return
	}
	if h.hasFlag(flagInTxnWrite) {
		h.index.lock.writeUnlock()
	} else if h.hasFlag(flagInTxnRead) {
		h.index.lock.readUnlock()
	}
	h.clearFlag(flagInTxnRead)
	h.clearFlag(flagInTxnWrite)
}
