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
)

// GrantPermission grants a doctor viewing rights over a patient. The grant transaction is only
// submitted once the doctor is known to the registry.
func (rl RecordsLogic) GrantPermission(ctx context.Context, flow *Flow, request GrantRequest) error {
	if err := flow.begin(); err != nil {
		return err
	}
	if err := rl.grant(ctx, flow, request); err != nil {
		logger().WithError(err).Errorf("granting %s access to %s failed", request.DoctorID, request.PatientID)
		return flow.finish("", err)
	}
	return flow.finish("", nil)
}

func (rl RecordsLogic) grant(ctx context.Context, flow *Flow, request GrantRequest) error {
	patientID := strings.TrimSpace(request.PatientID)
	doctorID := strings.TrimSpace(request.DoctorID)

	if doctorID == "" {
		return failf(ErrInvalidInput, "doctor id is empty")
	}
	if patientID == "" {
		return failf(ErrInvalidInput, "patient id is empty")
	}

	{
		known, err := rl.chain().IsDoctorRegistered(ctx, doctorID)
		if err != nil {
			return fail(ErrChainReadFailed, err)
		}
		if !known {
			return failf(ErrUnknownDoctor, "doctor %s", doctorID)
		}
		logger().Debugf("doctor %s is registered", doctorID)
	}

	flow.enter(StateSubmitting)
	from, err := rl.signer(ctx)
	if err != nil {
		return err
	}
	if err := rl.chain().GrantDoctorPermission(ctx, from, patientID, doctorID); err != nil {
		return fail(ErrChainWriteFailed, err)
	}
	logger().Infof("granted doctor %s access to patient %s", doctorID, patientID)
	return nil
}
