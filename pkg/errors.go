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
	"emperror.dev/errors"
)

// Kind classifies orchestration failures.
type Kind string

const (
	KindNone                   Kind = ""
	KindNotRegistered          Kind = "NotRegistered"
	KindUnknownDoctor          Kind = "UnknownDoctor"
	KindInvalidInput           Kind = "InvalidInput"
	KindAuthDenied             Kind = "AuthDenied"
	KindPinningFailed          Kind = "PinningFailed"
	KindChainReadFailed        Kind = "ChainReadFailed"
	KindChainWriteFailed       Kind = "ChainWriteFailed"
	KindReconciliationDegraded Kind = "ReconciliationDegraded"
)

const (
	ErrNotRegistered          = errors.Sentinel("subject is not registered")
	ErrUnknownDoctor          = errors.Sentinel("doctor is not registered")
	ErrInvalidInput           = errors.Sentinel("invalid input")
	ErrAuthDenied             = errors.Sentinel("wallet authentication denied")
	ErrPinningFailed          = errors.Sentinel("pinning service failure")
	ErrChainReadFailed        = errors.Sentinel("contract read failed")
	ErrChainWriteFailed       = errors.Sentinel("contract transaction failed")
	ErrReconciliationDegraded = errors.Sentinel("record reconciliation degraded")
)

// Flow guard errors. These are not failure kinds: the flow they guard is left untouched.
const (
	ErrFlowBusy      = errors.Sentinel("an action is already in flight for this form")
	ErrResetRequired = errors.Sentinel("previous action finished, reset the form first")
)

var kinds = map[error]Kind{
	ErrNotRegistered:          KindNotRegistered,
	ErrUnknownDoctor:          KindUnknownDoctor,
	ErrInvalidInput:           KindInvalidInput,
	ErrAuthDenied:             KindAuthDenied,
	ErrPinningFailed:          KindPinningFailed,
	ErrChainReadFailed:        KindChainReadFailed,
	ErrChainWriteFailed:       KindChainWriteFailed,
	ErrReconciliationDegraded: KindReconciliationDegraded,
}

// Failure is the error returned at the orchestrator boundary. Kind is one of the Err* sentinels.
type Failure struct {
	Kind  errors.Sentinel
	Cause error
}

func (f *Failure) Error() string {
	if f.Cause == nil {
		return f.Kind.Error()
	}
	return f.Kind.Error() + ": " + f.Cause.Error()
}

func (f *Failure) Is(target error) bool {
	s, ok := target.(errors.Sentinel)
	return ok && s == f.Kind
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

func fail(kind errors.Sentinel, cause error) error {
	return &Failure{Kind: kind, Cause: cause}
}

func failf(kind errors.Sentinel, format string, args ...interface{}) error {
	return &Failure{Kind: kind, Cause: errors.Errorf(format, args...)}
}

// KindOf returns the failure kind carried by err, or KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var failure *Failure
	if errors.As(err, &failure) {
		return kinds[failure.Kind]
	}
	for sentinel, kind := range kinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindNone
}
