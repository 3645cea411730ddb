// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"time"

	"github.com/oxbow-labs/btindex/bt"
	"github.com/oxbow-labs/btindex/metrics"
)

// Get positions the handle's cursor at key and returns its first payload.
func (h *Handle) Get(tx *Txn, key bt.Key) ([]byte, error) {
	if err := h.lockForRead(tx); err != nil {
		return nil, err
	}
	if tx == nil {
		defer h.index.lock.readUnlock()
	}

	v, err := h.cursor.Get(key)
	if err != nil {
		h.setFlag(flagNoGet)
		h.hasLastKey = false
		return nil, err
	}
	h.clearFlag(flagNoGet)
	h.lastKey, h.hasLastKey = key, true
	return v, nil
}

// GetNext returns the handle's cursor's next (key, first-payload) pair in
// ascending order.
func (h *Handle) GetNext(tx *Txn) (bt.Key, []byte, error) {
	if err := h.lockForRead(tx); err != nil {
		return bt.Key{}, nil, err
	}
	if tx == nil {
		defer h.index.lock.readUnlock()
	}

	k, v, err := h.cursor.GetNext()
	if err != nil {
		h.setFlag(flagNoGet)
		h.hasLastKey = false
		return bt.Key{}, nil, err
	}
	h.clearFlag(flagNoGet)
	h.lastKey, h.hasLastKey = k, true
	return k, v, nil
}

// Insert adds payload under key.
func (h *Handle) Insert(tx *Txn, key bt.Key, payload []byte) error {
	if err := h.lockForWrite(tx); err != nil {
		return err
	}
	if tx == nil {
		defer h.index.lock.writeUnlock()
	}

	if err := h.index.trie.Insert(key, payload); err != nil {
		return err
	}
	metrics.GetCounter("btindex_insert_total").Add(1)

	if tx != nil {
		h.opLog = append(h.opLog, opLogEntry{kind: opInsert, key: key, payload: payload})
		h.repairCursor()
	}
	return nil
}

// Delete removes payload (or, if nil, every payload) under key.
func (h *Handle) Delete(tx *Txn, key bt.Key, payload []byte) error {
	if err := h.lockForWrite(tx); err != nil {
		return err
	}
	if tx == nil {
		defer h.index.lock.writeUnlock()
	}

	detached, err := h.index.trie.Delete(key, payload)
	if err != nil {
		return err
	}
	metrics.GetCounter("btindex_delete_total").Add(1)

	if tx != nil {
		h.opLog = append(h.opLog, opLogEntry{kind: opDelete, key: key, detached: detached})
		h.repairCursor()
	}
	return nil
}

// repairCursor re-syncs the handle's cursor against the live trie after an
// in-transaction mutation, so an in-progress scan stays valid. If the
// cursor was not already positioned on a key (NoGet set, or no prior
// Get/GetNext call), there is nothing to repair.
func (h *Handle) repairCursor() {
	if h.hasFlag(flagNoGet) || !h.hasLastKey {
		return
	}
	if _, err := h.cursor.Get(h.lastKey); err != nil {
		// the key the cursor was sitting on is gone; cursor.Get already
		// repositioned it for a forward GetNext from that point.
		h.hasLastKey = false
	}
}

var lockWaitHistogram = metrics.GetHistogram("btindex_lock_wait_nanoseconds", []float64{
	1e5, 1e6, 5e6, 1e7, 5e7, 8e7, 1.5e8,
})

func (h *Handle) lockForRead(tx *Txn) error {
	if tx == nil {
		start := time.Now()
		ok := h.index.lock.readLockDB(time.Now().Add(lockTimeout))
		lockWaitHistogram.Observe(int64(time.Since(start)))
		if !ok {
			metrics.GetCounter("btindex_deadlock_total").Add(1)
			return ErrDeadlock
		}
		return nil
	}

	if h.hasFlag(flagInTxnRead) || h.hasFlag(flagInTxnWrite) {
		return nil
	}
	start := time.Now()
	ok := h.index.lock.readLockDB(time.Now().Add(lockTimeout))
	lockWaitHistogram.Observe(int64(time.Since(start)))
	if !ok {
		h.setFlag(flagDeadlock)
		metrics.GetCounter("btindex_deadlock_total").Add(1)
		return ErrDeadlock
	}
	h.setFlag(flagInTxnRead)
	h.txn = tx
	tx.register(h)
	return nil
}

func (h *Handle) lockForWrite(tx *Txn) error {
	if tx == nil {
		start := time.Now()
		ok := h.index.lock.writeLockDB(time.Now().Add(lockTimeout))
		lockWaitHistogram.Observe(int64(time.Since(start)))
		if !ok {
			metrics.GetCounter("btindex_deadlock_total").Add(1)
			return ErrDeadlock
		}
		return nil
	}

	if h.hasFlag(flagInTxnWrite) {
		return nil
	}

	if h.hasFlag(flagInTxnRead) {
		// Upgrade: drop the read side and attempt the write side
		// non-blockingly. Failure here does not re-acquire the read
		// lock, a known, documented race (see DESIGN.md).
		h.index.lock.readUnlock()
		h.clearFlag(flagInTxnRead)
		if !h.index.lock.tryWriteLockNow() {
			h.setFlag(flagDeadlock)
			metrics.GetCounter("btindex_deadlock_total").Add(1)
			return ErrDeadlock
		}
		h.setFlag(flagInTxnWrite)
		return nil
	}

	start := time.Now()
	ok := h.index.lock.writeLockDB(time.Now().Add(lockTimeout))
	lockWaitHistogram.Observe(int64(time.Since(start)))
	if !ok {
		h.setFlag(flagDeadlock)
		metrics.GetCounter("btindex_deadlock_total").Add(1)
		return ErrDeadlock
	}
	h.setFlag(flagInTxnWrite)
	h.txn = tx
	tx.register(h)
	return nil
}
