// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state provides a journaled key/value overlay over a kv.Store.
// Changes made through a State stay in memory, can be reverted to a
// checkpoint, and reach the store only through Commit as one atomic batch.
package state
