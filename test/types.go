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

package test

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/healthhub/hh-records-logic/pkg"
)

// Identity returns a deterministic checksummed wallet address for n.
func Identity(n int) pkg.Identity {
	return pkg.Identity(common.HexToAddress(fmt.Sprintf("0x%040x", 0xabc0000+n)).Hex())
}

// ChainRecord returns an on-chain record referencing hash.
func ChainRecord(id, hash string, author pkg.Identity) pkg.FileRecord {
	return pkg.FileRecord{
		RecordID:    id,
		Date:        "2024-03-01",
		Description: pkg.DefaultUploadDescription,
		Author:      author,
		ContentHash: hash,
		Origin:      pkg.OriginChain,
	}
}

// Pin returns a pinning listing row tagged with subjectID, pinned age ago. An empty subjectID leaves
// the pin untagged.
func Pin(hash, subjectID string, age time.Duration) pkg.PinnedFile {
	keyValues := map[string]string{}
	if subjectID != "" {
		keyValues[pkg.MetaSubjectID] = subjectID
	}
	return pkg.PinnedFile{
		ContentHash: hash,
		Name:        hash + ".pdf",
		KeyValues:   keyValues,
		PinnedAt:    time.Now().Add(-age),
	}
}
