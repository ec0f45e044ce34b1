// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	time INTEGER NOT NULL,
	period INTEGER NOT NULL,
	kind TEXT NOT NULL,
	caller TEXT NOT NULL,
	record INTEGER NOT NULL,
	receipt INTEGER NOT NULL,
	asset TEXT NOT NULL,
	amount TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS eventRecordIndex ON event(record);
CREATE INDEX IF NOT EXISTS eventAssetIndex ON event(asset);
CREATE INDEX IF NOT EXISTS eventKindIndex ON event(kind);
CREATE INDEX IF NOT EXISTS eventTimeIndex ON event(time);
`
