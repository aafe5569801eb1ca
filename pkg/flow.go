/*
 * This file is part of hh-records-logic.
 *
 * hh-records-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * hh-records-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with hh-records-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package pkg

import (
	"fmt"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
)

// State of an orchestration flow.
type State string

const (
	StateIdle       State = "Idle"
	StateValidating State = "Validating"
	StateUploading  State = "Uploading"
	StateSubmitting State = "Submitting"
	StateSucceeded  State = "Succeeded"
	StateFailed     State = "Failed"
)

// Terminal returns true for Succeeded and Failed.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// InFlight returns true while an action is running.
func (s State) InFlight() bool {
	return s == StateValidating || s == StateUploading || s == StateSubmitting
}

// FlowStatus is a snapshot of a Flow.
type FlowStatus struct {
	RunID       string    `json:"runId,omitempty" yaml:"runId,omitempty"`
	State       State     `json:"state" yaml:"state"`
	Kind        Kind      `json:"kind,omitempty" yaml:"kind,omitempty"`
	Message     string    `json:"message,omitempty" yaml:"message,omitempty"`
	ContentHash string    `json:"contentHash,omitempty" yaml:"contentHash,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Flow is the state of one form: at most one action in flight, terminal states stay until Reset.
type Flow struct {
	mutex   sync.Mutex
	status  FlowStatus
	removed bool
}

// NewFlow returns an idle flow.
func NewFlow() *Flow {
	return &Flow{status: FlowStatus{State: StateIdle, UpdatedAt: time.Now()}}
}

// Status returns a copy of the current status.
func (f *Flow) Status() FlowStatus {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.status
}

// Reset moves a terminal flow back to Idle. Resetting an in-flight flow is refused.
func (f *Flow) Reset() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.status.State.InFlight() {
		return ErrFlowBusy
	}
	f.status = FlowStatus{State: StateIdle, UpdatedAt: time.Now()}
	return nil
}

func (f *Flow) begin() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	switch {
	case f.removed:
		// reset and dropped from its registry while the caller held it
		return ErrResetRequired
	case f.status.State.InFlight():
		return ErrFlowBusy
	case f.status.State.Terminal():
		return ErrResetRequired
	}
	f.status = FlowStatus{
		RunID:     uuid.NewV4().String(),
		State:     StateValidating,
		UpdatedAt: time.Now(),
	}
	return nil
}

func (f *Flow) enter(state State) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.status.State = state
	f.status.UpdatedAt = time.Now()
}

// finish records the terminal state for err and returns err unchanged.
func (f *Flow) finish(contentHash string, err error) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.status.UpdatedAt = time.Now()
	if err != nil {
		f.status.State = StateFailed
		f.status.Kind = KindOf(err)
		f.status.Message = err.Error()
		return err
	}
	f.status.State = StateSucceeded
	f.status.ContentHash = contentHash
	return nil
}

// FlowRegistry keeps one Flow per form, keyed by operation and subject.
type FlowRegistry struct {
	mutex sync.Mutex
	flows map[string]*Flow
}

func NewFlowRegistry() *FlowRegistry {
	return &FlowRegistry{flows: map[string]*Flow{}}
}

// Get returns the flow for operation and subject, creating an idle one on first use.
func (r *FlowRegistry) Get(operation, subjectID string) *Flow {
	key := flowKey(operation, subjectID)
	r.mutex.Lock()
	defer r.mutex.Unlock()
	flow, ok := r.flows[key]
	if !ok {
		flow = NewFlow()
		r.flows[key] = flow
	}
	return flow
}

// Status returns the status of the flow for operation and subject. A form that was never used, or
// was reset, reports Idle without being registered.
func (r *FlowRegistry) Status(operation, subjectID string) FlowStatus {
	r.mutex.Lock()
	flow, ok := r.flows[flowKey(operation, subjectID)]
	r.mutex.Unlock()
	if !ok {
		return FlowStatus{State: StateIdle, UpdatedAt: time.Now()}
	}
	return flow.Status()
}

// Reset resets the flow for operation and subject and drops it from the registry. Resetting an
// in-flight flow is refused.
func (r *FlowRegistry) Reset(operation, subjectID string) (FlowStatus, error) {
	key := flowKey(operation, subjectID)
	r.mutex.Lock()
	defer r.mutex.Unlock()
	flow, ok := r.flows[key]
	if !ok {
		return FlowStatus{State: StateIdle, UpdatedAt: time.Now()}, nil
	}
	flow.mutex.Lock()
	defer flow.mutex.Unlock()
	if flow.status.State.InFlight() {
		return flow.status, ErrFlowBusy
	}
	flow.removed = true
	delete(r.flows, key)
	return FlowStatus{State: StateIdle, UpdatedAt: time.Now()}, nil
}

// Len returns the number of registered flows.
func (r *FlowRegistry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.flows)
}

func flowKey(operation, subjectID string) string {
	return fmt.Sprintf("%s/%s", operation, subjectID)
}
