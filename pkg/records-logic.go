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

//go:generate mockgen -destination=mock/mock_records_logic.go -package=mock -source=records-logic.go

import (
	"context"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
)

// DefaultUploadDescription is stored on-chain when an upload carries no description.
const DefaultUploadDescription = "Uploaded Health Record"

// DefaultMaxUploadSize limits the payload of a single upload.
const DefaultMaxUploadSize = int64(100 * 1024 * 1024)

type RecordsLogicConfig struct {
	// MaxUploadSize is the largest accepted payload in bytes. Zero means DefaultMaxUploadSize.
	MaxUploadSize int64
}

// RecordsLogicClient is the surface used by the API and the CLI.
type RecordsLogicClient interface {
	ReconcileRecords(ctx context.Context, subjectID string) (*RecordSet, error)
	UploadRecord(ctx context.Context, flow *Flow, request UploadRequest) (*UploadResult, error)
	GrantPermission(ctx context.Context, flow *Flow, request GrantRequest) error
	CreatePrescription(ctx context.Context, flow *Flow, request PrescriptionRequest) error
	ListPatients(ctx context.Context) ([]PatientRecord, error)
	PatientDetails(ctx context.Context, subjectID string) (*PatientRecord, error)
	RemovePatient(ctx context.Context, subjectID string) error
	DeleteRecord(ctx context.Context, subjectID string, index uint64) (*DeleteResult, error)
	SweepOrphans(ctx context.Context, grace time.Duration) (*SweepReport, error)
}

// Session binds the external collaborators for one process. It is built once at start-up and passed
// to RecordsLogic instead of each action re-deriving its own wallet and contract bindings.
type Session struct {
	Chain   ContractGateway
	Pinning PinningClient
	Wallet  WalletSession
	closers []func() error
}

// OnClose registers a function to call when the session is torn down.
func (s *Session) OnClose(f func() error) {
	s.closers = append(s.closers, f)
}

// Close tears down the session in reverse registration order.
func (s *Session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Combine(errs...)
}

type RecordsLogic struct {
	Session *Session
	Config  RecordsLogicConfig
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "records-logic")
}

var instance *RecordsLogic
var oneEngine sync.Once

// RecordsLogicInstance returns the process wide RecordsLogic. Its session is filled in on engine start.
func RecordsLogicInstance() *RecordsLogic {
	oneEngine.Do(func() {
		instance = NewRecordsLogic(RecordsLogicConfig{}, &Session{})
	})
	return instance
}

// NewRecordsLogic returns a RecordsLogic bound to the given session.
func NewRecordsLogic(config RecordsLogicConfig, session *Session) *RecordsLogic {
	return &RecordsLogic{Session: session, Config: config}
}

func (rl RecordsLogic) chain() ContractGateway {
	return rl.Session.Chain
}

func (rl RecordsLogic) pinning() PinningClient {
	return rl.Session.Pinning
}

func (rl RecordsLogic) maxUploadSize() int64 {
	if rl.Config.MaxUploadSize > 0 {
		return rl.Config.MaxUploadSize
	}
	return DefaultMaxUploadSize
}

// signer asks the wallet for its accounts and returns the first one.
func (rl RecordsLogic) signer(ctx context.Context) (Identity, error) {
	if rl.Session.Wallet == nil {
		return "", fail(ErrAuthDenied, errors.New("no wallet provider configured"))
	}
	accounts, err := rl.Session.Wallet.RequestAccounts(ctx)
	if err != nil {
		return "", fail(ErrAuthDenied, err)
	}
	if len(accounts) == 0 {
		return "", fail(ErrAuthDenied, errors.New("wallet returned no accounts"))
	}
	return accounts[0], nil
}

// subjectRegistered checks the subject precondition shared by all subject-scoped writes.
func (rl RecordsLogic) subjectRegistered(ctx context.Context, subjectID string) error {
	registered, err := rl.chain().IsSubjectRegistered(ctx, subjectID)
	if err != nil {
		return fail(ErrChainReadFailed, err)
	}
	if !registered {
		return failf(ErrNotRegistered, "subject %s", subjectID)
	}
	return nil
}

// Configure validates the configuration.
func (rl RecordsLogic) Configure() error {
	if rl.Config.MaxUploadSize < 0 {
		return errors.New("upload max size must not be negative")
	}
	return nil
}

// Shutdown closes the session.
func (rl *RecordsLogic) Shutdown() error {
	if rl.Session == nil {
		return nil
	}
	return rl.Session.Close()
}
