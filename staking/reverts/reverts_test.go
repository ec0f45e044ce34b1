// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(Validation, "test")
	assert.Equal(t, "test", revert.Error())
	assert.Equal(t, Validation, revert.Kind())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_Kinds(t *testing.T) {
	wrapped := errors.Wrap(ErrStakeLocked, "start unstake")

	assert.True(t, IsRevertErr(wrapped))
	assert.True(t, errors.Is(wrapped, ErrStakeLocked))
	assert.True(t, IsStateConflict(wrapped))
	assert.False(t, IsValidation(wrapped))

	assert.True(t, IsValidation(ErrNotOwner))
	assert.True(t, IsResourceExhaustion(ErrInsufficientBalance))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))

	assert.Equal(t, "state conflict", StateConflict.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
