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

//go:generate mockgen -destination=mock/mock_clients.go -package=mock -source=clients.go

import (
	"context"
	"math/big"
)

// ContractGateway is the patient registry contract. Writes are sent from the given identity and
// return once the transaction is mined; a reverted receipt is an error.
type ContractGateway interface {
	IsSubjectRegistered(ctx context.Context, subjectID string) (bool, error)
	IsDoctorRegistered(ctx context.Context, doctorID string) (bool, error)
	GetAllPatients(ctx context.Context) ([]PatientRecord, error)
	GetPatientDetails(ctx context.Context, subjectID string) (PatientRecord, error)
	// GetPatientRecords returns the on-chain file metadata of a subject in contract order.
	GetPatientRecords(ctx context.Context, subjectID string) ([]FileRecord, error)
	AddPatientRecord(ctx context.Context, from Identity, subjectID, date, description string, author Identity, contentHash string) error
	DeletePatientRecord(ctx context.Context, from Identity, subjectID string, index *big.Int) error
	GrantDoctorPermission(ctx context.Context, from Identity, patientID, doctorID string) error
	RemovePatient(ctx context.Context, from Identity, subjectID string) error
}

// PinningClient is the IPFS pinning service.
type PinningClient interface {
	PinFile(ctx context.Context, name string, content []byte, keyValues map[string]string) (string, error)
	ListPinned(ctx context.Context, filter PinFilter) ([]PinnedFile, error)
	Unpin(ctx context.Context, contentHash string) error
}

// WalletSession supplies the signer identity.
type WalletSession interface {
	// RequestAccounts asks the wallet for its accounts. A rejection or a missing key is an error.
	RequestAccounts(ctx context.Context) ([]Identity, error)
	// CurrentAccount returns the account selected by the last successful RequestAccounts.
	CurrentAccount() (Identity, bool)
	ChainID() *big.Int
}
