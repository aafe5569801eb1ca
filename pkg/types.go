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
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Identity is a wallet address in checksummed hex form.
type Identity string

// ParseIdentity validates a hex address and returns its checksummed form.
func ParseIdentity(value string) (Identity, error) {
	value = strings.TrimSpace(value)
	if !common.IsHexAddress(value) {
		return "", fmt.Errorf("invalid wallet address: %q", value)
	}
	return Identity(common.HexToAddress(value).Hex()), nil
}

// Address returns the identity as a go-ethereum address.
func (i Identity) Address() common.Address {
	return common.HexToAddress(string(i))
}

func (i Identity) String() string {
	return string(i)
}

// Origin tells which source produced a FileRecord.
type Origin string

const (
	OriginChain   Origin = "chain"
	OriginPinning Origin = "pinning"
)

// PatientRecord is a patient entry as registered in the contract.
type PatientRecord struct {
	SubjectID     string   `json:"subjectId" yaml:"subjectId"`
	Name          string   `json:"name" yaml:"name"`
	DateOfBirth   string   `json:"dateOfBirth" yaml:"dateOfBirth"`
	Gender        string   `json:"gender" yaml:"gender"`
	BloodGroup    string   `json:"bloodGroup" yaml:"bloodGroup"`
	HomeAddress   string   `json:"homeAddress,omitempty" yaml:"homeAddress,omitempty"`
	Email         string   `json:"email,omitempty" yaml:"email,omitempty"`
	WalletAddress Identity `json:"walletAddress" yaml:"walletAddress"`
}

// FileRecord is a single displayable record, either referenced on-chain or found in the pinning service.
type FileRecord struct {
	RecordID    string     `json:"recordId" yaml:"recordId"`
	Date        string     `json:"date" yaml:"date"`
	Description string     `json:"description" yaml:"description"`
	Author      Identity   `json:"author,omitempty" yaml:"author,omitempty"`
	ContentHash string     `json:"contentHash" yaml:"contentHash"`
	Origin      Origin     `json:"origin" yaml:"origin"`
	PinnedAt    *time.Time `json:"pinnedAt,omitempty" yaml:"pinnedAt,omitempty"`
	// External is set for pinning entries not tagged with the requested subject.
	External bool `json:"external,omitempty" yaml:"external,omitempty"`
}

// PinnedFile is one row of a pinning service listing.
type PinnedFile struct {
	ContentHash string
	Name        string
	KeyValues   map[string]string
	PinnedAt    time.Time
	Size        int64
}

// PinFilter narrows a pinning listing. The zero value lists everything pinned.
type PinFilter struct {
	// KeyValues are exact-match metadata filters. Scoping is best effort on the service side.
	KeyValues map[string]string
	// PinnedBefore excludes pins made at or after this moment when set.
	PinnedBefore *time.Time
}

// Metadata keys set on every pin made by the upload flow.
const (
	MetaSubjectID     = "subjectId"
	MetaAuthor        = "author"
	MetaPatientWallet = "patientWallet"
)

// UploadRequest carries a single file upload for a subject.
type UploadRequest struct {
	SubjectID string
	FileName  string
	Content   []byte
	// Description defaults to DefaultUploadDescription.
	Description string
	// Author overrides the signer as the record author, e.g. a diagnostic centre wallet.
	Author string
	// PatientWallet overrides the wallet address registered for the patient.
	PatientWallet string
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	ContentHash string     `json:"contentHash" yaml:"contentHash"`
	Author      Identity   `json:"author" yaml:"author"`
	Records     *RecordSet `json:"records" yaml:"records"`
}

// GrantRequest grants a doctor viewing rights over a patient.
type GrantRequest struct {
	PatientID string
	DoctorID  string
}

// PrescriptionRequest creates a text-only record for a patient.
type PrescriptionRequest struct {
	SubjectID    string
	Diagnosis    string
	Prescription string
}

// RecordSet is the reconciled view of a subject's records.
type RecordSet struct {
	SubjectID string       `json:"subjectId" yaml:"subjectId"`
	Records   []FileRecord `json:"records" yaml:"records"`
	// Warnings holds non-fatal ReconciliationDegraded messages.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// DeleteResult reports a record deletion.
type DeleteResult struct {
	SubjectID   string   `json:"subjectId" yaml:"subjectId"`
	Index       uint64   `json:"index" yaml:"index"`
	ContentHash string   `json:"contentHash,omitempty" yaml:"contentHash,omitempty"`
	Unpinned    bool     `json:"unpinned" yaml:"unpinned"`
	Warnings    []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// SweepReport summarises an orphan sweep.
type SweepReport struct {
	Checked  int      `json:"checked" yaml:"checked"`
	Unpinned []string `json:"unpinned" yaml:"unpinned"`
}
