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

	"emperror.dev/errors"
)

// ExternalDescription replaces the description of pins not tagged with the requested subject.
const ExternalDescription = "Externally supplied record"

const dateLayout = "2006-01-02"

// ReconcileRecords merges the on-chain records of a subject with the pinning service listing.
// When one source fails the other is still returned, with a warning in the RecordSet. When both fail
// the RecordSet is empty and the error is ReconciliationDegraded.
func (rl RecordsLogic) ReconcileRecords(ctx context.Context, subjectID string) (*RecordSet, error) {
	subjectID = strings.TrimSpace(subjectID)
	set := &RecordSet{SubjectID: subjectID, Records: []FileRecord{}}
	if subjectID == "" {
		return set, failf(ErrInvalidInput, "subject id is empty")
	}

	chainRecords, chainErr := rl.chain().GetPatientRecords(ctx, subjectID)
	if chainErr != nil {
		chainErr = fail(ErrChainReadFailed, chainErr)
		logger().WithError(chainErr).Warnf("continuing with pinning service records only for %s", subjectID)
	}

	// the listing is not scoped: the service gives no guarantee that tags are honoured
	pinned, pinErr := rl.pinning().ListPinned(ctx, PinFilter{})
	if pinErr != nil {
		pinErr = fail(ErrPinningFailed, pinErr)
		logger().WithError(pinErr).Warnf("continuing with on-chain records only for %s", subjectID)
	}

	for _, err := range []error{chainErr, pinErr} {
		if err != nil {
			set.Warnings = append(set.Warnings, fail(ErrReconciliationDegraded, err).Error())
		}
	}
	if chainErr != nil && pinErr != nil {
		err := fail(ErrReconciliationDegraded, errors.Combine(chainErr, pinErr))
		logger().WithError(err).Errorf("no record source available for %s", subjectID)
		return set, err
	}

	set.Records = MergeRecords(subjectID, chainRecords, pinned)
	logger().Debugf("reconciled %d records for %s (%d on-chain, %d pinned)", len(set.Records), subjectID, len(chainRecords), len(pinned))
	return set, nil
}

// MergeRecords concatenates chain records and pinning entries, drops entries without content hash
// and keeps the first record per content hash, so on-chain records win over pins.
func MergeRecords(subjectID string, chainRecords []FileRecord, pinned []PinnedFile) []FileRecord {
	candidates := make([]FileRecord, 0, len(chainRecords)+len(pinned))
	for _, record := range chainRecords {
		record.Origin = OriginChain
		candidates = append(candidates, record)
	}
	for _, pin := range pinned {
		candidates = append(candidates, fromPin(subjectID, pin))
	}

	seen := make(map[string]bool, len(candidates))
	merged := make([]FileRecord, 0, len(candidates))
	for _, record := range candidates {
		hash := strings.TrimSpace(record.ContentHash)
		if hash == "" || seen[hash] {
			continue
		}
		seen[hash] = true
		record.ContentHash = hash
		merged = append(merged, record)
	}
	return merged
}

func fromPin(subjectID string, pin PinnedFile) FileRecord {
	pinnedAt := pin.PinnedAt
	record := FileRecord{
		RecordID:    pin.ContentHash,
		Description: pin.Name,
		ContentHash: pin.ContentHash,
		Origin:      OriginPinning,
	}
	if !pinnedAt.IsZero() {
		record.Date = pinnedAt.UTC().Format(dateLayout)
		record.PinnedAt = &pinnedAt
	}
	if author, err := ParseIdentity(pin.KeyValues[MetaAuthor]); err == nil {
		record.Author = author
	}
	if pin.KeyValues[MetaSubjectID] != subjectID {
		record.Description = ExternalDescription
		record.External = true
	}
	return record
}
