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
	"sort"
	"strings"
	"time"

	"emperror.dev/errors"
)

// DefaultSweepGrace is the minimum age of a pin before the sweep considers it orphaned.
const DefaultSweepGrace = 24 * time.Hour

// SweepOrphans unpins files that were pinned by the upload flow but never referenced on-chain.
// Only pins tagged with a subject id and older than grace are considered. A pin referenced by any
// registered patient is kept, whatever its tag. When the records of one patient cannot be read the
// whole sweep is called off.
func (rl RecordsLogic) SweepOrphans(ctx context.Context, grace time.Duration) (*SweepReport, error) {
	if grace <= 0 {
		grace = DefaultSweepGrace
	}
	cutoff := recordTime.Now().Add(-grace)
	pinned, err := rl.pinning().ListPinned(ctx, PinFilter{PinnedBefore: &cutoff})
	if err != nil {
		return nil, fail(ErrPinningFailed, err)
	}

	var candidates []PinnedFile
	for _, pin := range pinned {
		subjectID := strings.TrimSpace(pin.KeyValues[MetaSubjectID])
		if subjectID == "" || pin.ContentHash == "" || !pin.PinnedAt.Before(cutoff) {
			continue
		}
		candidates = append(candidates, pin)
	}

	report := &SweepReport{Unpinned: []string{}}
	if len(candidates) == 0 {
		return report, nil
	}
	referenced, err := rl.referencedHashes(ctx, "")
	if err != nil {
		logger().WithError(err).Warn("sweep called off, on-chain references are incomplete")
		return nil, err
	}

	for _, pin := range candidates {
		report.Checked++
		if referenced[pin.ContentHash] {
			continue
		}
		subjectID := pin.KeyValues[MetaSubjectID]
		if err := rl.pinning().Unpin(ctx, pin.ContentHash); err != nil {
			logger().WithError(err).Warnf("could not unpin orphan %s of %s", pin.ContentHash, subjectID)
			continue
		}
		logger().Infof("unpinned orphan %s of %s", pin.ContentHash, subjectID)
		report.Unpinned = append(report.Unpinned, pin.ContentHash)
	}
	return report, nil
}

// referencedHashes collects the content hashes of the on-chain records of every registered patient
// except skip. A single failed read fails the collection.
func (rl RecordsLogic) referencedHashes(ctx context.Context, skip string) (map[string]bool, error) {
	patients, err := rl.chain().GetAllPatients(ctx)
	if err != nil {
		return nil, fail(ErrChainReadFailed, err)
	}
	subjects := make([]string, 0, len(patients))
	for _, patient := range patients {
		if subjectID := strings.TrimSpace(patient.SubjectID); subjectID != "" && subjectID != skip {
			subjects = append(subjects, subjectID)
		}
	}
	sort.Strings(subjects)

	referenced := map[string]bool{}
	for _, subjectID := range subjects {
		records, err := rl.chain().GetPatientRecords(ctx, subjectID)
		if err != nil {
			return nil, fail(ErrChainReadFailed, errors.WrapIff(err, "records of %s", subjectID))
		}
		for _, record := range records {
			if hash := strings.TrimSpace(record.ContentHash); hash != "" {
				referenced[hash] = true
			}
		}
	}
	return referenced, nil
}
