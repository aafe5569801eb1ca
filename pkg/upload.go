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
	"context"
	"strings"
	"time"
)

type clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

var recordTime clock = realClock{}

// recordDate is the calendar date stored with new records: UTC, no time component.
func recordDate() string {
	return recordTime.Now().UTC().Format(dateLayout)
}

// UploadRecord pins a file and references it on-chain for the subject.
// Steps, each gating the next:
//  1. the subject must be registered (NotRegistered, nothing is pinned otherwise)
//  2. the payload is pinned (PinningFailed, no chain write)
//  3. the signer is resolved (AuthDenied)
//  4. the record is written on-chain (ChainWriteFailed, the pin stays behind for the orphan sweep)
func (rl RecordsLogic) UploadRecord(ctx context.Context, flow *Flow, request UploadRequest) (*UploadResult, error) {
	if err := flow.begin(); err != nil {
		return nil, err
	}
	result, err := rl.upload(ctx, flow, request)
	if err != nil {
		logger().WithError(err).Errorf("upload for %s failed", request.SubjectID)
		return nil, flow.finish("", err)
	}
	return result, flow.finish(result.ContentHash, nil)
}

func (rl RecordsLogic) upload(ctx context.Context, flow *Flow, request UploadRequest) (*UploadResult, error) {
	var (
		err           error
		author        Identity
		patientWallet Identity
		contentHash   string
		signer        Identity
	)
	subjectID := strings.TrimSpace(request.SubjectID)
	description := strings.TrimSpace(request.Description)
	if description == "" {
		description = DefaultUploadDescription
	}

	{
		if subjectID == "" {
			return nil, failf(ErrInvalidInput, "subject id is empty")
		}
		if len(request.Content) == 0 {
			return nil, failf(ErrInvalidInput, "no file selected")
		}
		if int64(len(request.Content)) > rl.maxUploadSize() {
			return nil, failf(ErrInvalidInput, "file of %d bytes exceeds the limit of %d bytes", len(request.Content), rl.maxUploadSize())
		}
		if request.Author != "" {
			if author, err = ParseIdentity(request.Author); err != nil {
				return nil, fail(ErrInvalidInput, err)
			}
		}
		if request.PatientWallet != "" {
			if patientWallet, err = ParseIdentity(request.PatientWallet); err != nil {
				return nil, fail(ErrInvalidInput, err)
			}
		}
	}
	{
		if err = rl.subjectRegistered(ctx, subjectID); err != nil {
			return nil, err
		}
		logger().Debugf("subject %s is registered", subjectID)
	}
	{
		flow.enter(StateUploading)
		keyValues := map[string]string{MetaSubjectID: subjectID}
		if author != "" {
			keyValues[MetaAuthor] = author.String()
		}
		if patientWallet != "" {
			keyValues[MetaPatientWallet] = patientWallet.String()
		}
		name := request.FileName
		if name == "" {
			name = description
		}
		if contentHash, err = rl.pinning().PinFile(ctx, name, request.Content, keyValues); err != nil {
			return nil, fail(ErrPinningFailed, err)
		}
		if contentHash == "" {
			return nil, failf(ErrPinningFailed, "pinning service returned no content hash")
		}
		logger().Debugf("pinned %s as %s", name, contentHash)
	}
	{
		flow.enter(StateSubmitting)
		if signer, err = rl.signer(ctx); err != nil {
			logger().Warnf("pin %s for %s is not referenced on-chain: signer unavailable", contentHash, subjectID)
			return nil, err
		}
		if author == "" {
			author = signer
		}
	}
	{
		if err = rl.chain().AddPatientRecord(ctx, signer, subjectID, recordDate(), description, author, contentHash); err != nil {
			logger().Warnf("pin %s for %s is not referenced on-chain, left for the orphan sweep", contentHash, subjectID)
			return nil, fail(ErrChainWriteFailed, err)
		}
		logger().Debugf("record %s added on-chain for %s", contentHash, subjectID)
	}

	records, err := rl.ReconcileRecords(ctx, subjectID)
	if err != nil {
		// the upload itself succeeded
		records.Warnings = append(records.Warnings, err.Error())
	}
	return &UploadResult{ContentHash: contentHash, Author: author, Records: records}, nil
}
