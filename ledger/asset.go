// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"strings"

	"github.com/pkg/errors"
)

// MaxAssetIDLength is the longest accepted asset identifier.
const MaxAssetIDLength = 64

// AssetID identifies a fungible asset known to the ledger.
type AssetID string

// ParseAssetID validates and normalizes an asset identifier.
func ParseAssetID(s string) (AssetID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("empty asset id")
	}
	if len(s) > MaxAssetIDLength {
		return "", errors.Errorf("asset id longer than %d", MaxAssetIDLength)
	}
	for _, c := range s {
		if c < 0x21 || c > 0x7e {
			return "", errors.Errorf("invalid character %q in asset id", c)
		}
	}
	return AssetID(s), nil
}

// Bytes returns the storage key form of the id.
func (a AssetID) Bytes() []byte {
	return []byte(a)
}

// IsZero returns whether the id is empty.
func (a AssetID) IsZero() bool {
	return a == ""
}

func (a AssetID) String() string {
	return string(a)
}
