// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type Tick struct {
	Period    uint64     `json:"period"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy     bool  `json:"healthy"`
	LastTick    *Tick `json:"lastTick"`
	Initialised bool  `json:"initialised"`
}

// Health tracks whether the ledger clock keeps being driven.
type Health struct {
	lock        sync.RWMutex
	lastTick    time.Time
	period      uint64
	initialised bool
}

func New() *Health {
	return &Health{}
}

// Tick records a successful pass of the period clock.
func (h *Health) Tick(period uint64) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastTick = time.Now()
	h.period = period
}

func (h *Health) Initialised(initialised bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.initialised = initialised
}

func (h *Health) Status(maxTimeBetweenTicks time.Duration) (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{
		Initialised: h.initialised,
	}
	if !h.lastTick.IsZero() {
		ts := h.lastTick
		status.LastTick = &Tick{Period: h.period, Timestamp: &ts}
	}
	status.Healthy = h.initialised &&
		!h.lastTick.IsZero() &&
		time.Since(h.lastTick) <= maxTimeBetweenTicks

	return status, nil
}
