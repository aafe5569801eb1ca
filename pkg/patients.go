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
	"math/big"
	"strings"

	"github.com/cbroglie/mustache"
)

const prescriptionTemplate = "Diagnosis: {{diagnosis}}\nPrescription: {{prescription}}"

// ListPatients returns every patient in the registry.
func (rl RecordsLogic) ListPatients(ctx context.Context) ([]PatientRecord, error) {
	patients, err := rl.chain().GetAllPatients(ctx)
	if err != nil {
		return nil, fail(ErrChainReadFailed, err)
	}
	return patients, nil
}

// PatientDetails returns the registry entry of one patient.
func (rl RecordsLogic) PatientDetails(ctx context.Context, subjectID string) (*PatientRecord, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, failf(ErrInvalidInput, "subject id is empty")
	}
	patient, err := rl.chain().GetPatientDetails(ctx, subjectID)
	if err != nil {
		return nil, fail(ErrChainReadFailed, err)
	}
	return &patient, nil
}

// RemovePatient removes a registered patient from the registry.
func (rl RecordsLogic) RemovePatient(ctx context.Context, subjectID string) error {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return failf(ErrInvalidInput, "subject id is empty")
	}
	if err := rl.subjectRegistered(ctx, subjectID); err != nil {
		return err
	}
	from, err := rl.signer(ctx)
	if err != nil {
		return err
	}
	if err := rl.chain().RemovePatient(ctx, from, subjectID); err != nil {
		return fail(ErrChainWriteFailed, err)
	}
	logger().Infof("removed patient %s", subjectID)
	return nil
}

// CreatePrescription stores a text-only record holding a diagnosis and prescription. It carries no
// content hash, so it never shows up in the reconciled file view.
func (rl RecordsLogic) CreatePrescription(ctx context.Context, flow *Flow, request PrescriptionRequest) error {
	if err := flow.begin(); err != nil {
		return err
	}
	if err := rl.prescribe(ctx, flow, request); err != nil {
		logger().WithError(err).Errorf("prescription for %s failed", request.SubjectID)
		return flow.finish("", err)
	}
	return flow.finish("", nil)
}

func (rl RecordsLogic) prescribe(ctx context.Context, flow *Flow, request PrescriptionRequest) error {
	subjectID := strings.TrimSpace(request.SubjectID)
	diagnosis := strings.TrimSpace(request.Diagnosis)
	prescription := strings.TrimSpace(request.Prescription)
	if subjectID == "" {
		return failf(ErrInvalidInput, "subject id is empty")
	}
	if diagnosis == "" && prescription == "" {
		return failf(ErrInvalidInput, "diagnosis and prescription are both empty")
	}

	description, err := renderPrescription(diagnosis, prescription)
	if err != nil {
		return fail(ErrInvalidInput, err)
	}
	if err := rl.subjectRegistered(ctx, subjectID); err != nil {
		return err
	}

	flow.enter(StateSubmitting)
	from, err := rl.signer(ctx)
	if err != nil {
		return err
	}
	if err := rl.chain().AddPatientRecord(ctx, from, subjectID, recordDate(), description, from, ""); err != nil {
		return fail(ErrChainWriteFailed, err)
	}
	logger().Debugf("prescription record added for %s", subjectID)
	return nil
}

func renderPrescription(diagnosis, prescription string) (string, error) {
	// on-chain descriptions are stored unescaped
	return mustache.RenderRaw(prescriptionTemplate, true, map[string]string{
		"diagnosis":    diagnosis,
		"prescription": prescription,
	})
}

// DeleteRecord deletes the on-chain record at index and unpins its file when no other on-chain record,
// of this or any other patient, references the same content hash. A failed unpin is reported as a
// warning, and so is a failed reference check, which keeps the pin.
func (rl RecordsLogic) DeleteRecord(ctx context.Context, subjectID string, index uint64) (*DeleteResult, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, failf(ErrInvalidInput, "subject id is empty")
	}
	records, err := rl.chain().GetPatientRecords(ctx, subjectID)
	if err != nil {
		return nil, fail(ErrChainReadFailed, err)
	}
	if index >= uint64(len(records)) {
		return nil, failf(ErrInvalidInput, "subject %s has no record at index %d", subjectID, index)
	}
	result := &DeleteResult{SubjectID: subjectID, Index: index, ContentHash: strings.TrimSpace(records[index].ContentHash)}

	from, err := rl.signer(ctx)
	if err != nil {
		return nil, err
	}
	if err := rl.chain().DeletePatientRecord(ctx, from, subjectID, new(big.Int).SetUint64(index)); err != nil {
		return nil, fail(ErrChainWriteFailed, err)
	}
	logger().Infof("deleted record %d of %s", index, subjectID)

	if result.ContentHash == "" {
		return result, nil
	}
	for i, record := range records {
		if uint64(i) != index && strings.TrimSpace(record.ContentHash) == result.ContentHash {
			logger().Debugf("%s is still referenced by record %d, keeping the pin", result.ContentHash, i)
			return result, nil
		}
	}
	referenced, err := rl.referencedHashes(ctx, subjectID)
	if err != nil {
		logger().WithError(err).Warnf("record deleted, keeping %s pinned", result.ContentHash)
		result.Warnings = append(result.Warnings, err.Error())
		return result, nil
	}
	if referenced[result.ContentHash] {
		logger().Debugf("%s is still referenced by another patient, keeping the pin", result.ContentHash)
		return result, nil
	}
	if err := rl.pinning().Unpin(ctx, result.ContentHash); err != nil {
		warning := fail(ErrPinningFailed, err)
		logger().WithError(warning).Warnf("record deleted but %s is still pinned", result.ContentHash)
		result.Warnings = append(result.Warnings, warning.Error())
		return result, nil
	}
	result.Unpinned = true
	return result, nil
}
