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

// NewTestRecordsLogicInstance returns a RecordsLogic over the given clients with a small upload limit.
func NewTestRecordsLogicInstance(chain ContractGateway, pinning PinningClient, wallet WalletSession) *RecordsLogic {
	session := &Session{Chain: chain, Pinning: pinning, Wallet: wallet}
	return NewRecordsLogic(RecordsLogicConfig{MaxUploadSize: 1024}, session)
}
