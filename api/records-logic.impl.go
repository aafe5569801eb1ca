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

package api

import (
	"fmt"
	"io"
	"net/http"

	"emperror.dev/errors"
	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Flow operations, as used in the flows path.
const (
	OperationUpload       = "upload"
	OperationGrant        = "grant"
	OperationPrescription = "prescription"
)

var operations = map[string]bool{OperationUpload: true, OperationGrant: true, OperationPrescription: true}

// multipartOverhead is the room left for form fields and part headers next to the file itself.
const multipartOverhead = 1 << 20

// Wrapper provides the implementation of the generated ServerInterface
type Wrapper struct {
	Cl    pkg.RecordsLogicClient
	Flows *pkg.FlowRegistry
	// MaxUploadSize caps the bytes read from an uploaded file. Zero means pkg.DefaultMaxUploadSize.
	MaxUploadSize int64
}

// BodyLimit returns middleware rejecting request bodies that cannot hold an upload of at most
// maxUploadSize bytes.
func BodyLimit(maxUploadSize int64) echo.MiddlewareFunc {
	if maxUploadSize <= 0 {
		maxUploadSize = pkg.DefaultMaxUploadSize
	}
	return middleware.BodyLimit(fmt.Sprintf("%dB", maxUploadSize+multipartOverhead))
}

func (w *Wrapper) maxUploadSize() int64 {
	if w.MaxUploadSize > 0 {
		return w.MaxUploadSize
	}
	return pkg.DefaultMaxUploadSize
}

// ListPatients returns all registered patients.
func (w *Wrapper) ListPatients(ctx echo.Context) error {
	patients, err := w.Cl.ListPatients(ctx.Request().Context())
	if err != nil {
		return w.failure(ctx, "list-patients", err)
	}
	observe("list-patients", nil)
	return ctx.JSON(http.StatusOK, patients)
}

// GetPatient returns the registry entry of a patient.
func (w *Wrapper) GetPatient(ctx echo.Context, subjectId string) error {
	patient, err := w.Cl.PatientDetails(ctx.Request().Context(), subjectId)
	if err != nil {
		return w.failure(ctx, "patient-details", err)
	}
	observe("patient-details", nil)
	return ctx.JSON(http.StatusOK, patient)
}

// RemovePatient removes a patient from the registry.
func (w *Wrapper) RemovePatient(ctx echo.Context, subjectId string) error {
	if err := w.Cl.RemovePatient(ctx.Request().Context(), subjectId); err != nil {
		return w.failure(ctx, "remove-patient", err)
	}
	observe("remove-patient", nil)
	return ctx.NoContent(http.StatusNoContent)
}

// degradedRecords is the body of a records read for which no source was available: the error
// together with the empty record set.
type degradedRecords struct {
	ErrorResponse
	*pkg.RecordSet
}

// ListRecords returns the reconciled records of a patient. Degraded reads are reported in the warnings.
func (w *Wrapper) ListRecords(ctx echo.Context, subjectId string) error {
	set, err := w.Cl.ReconcileRecords(ctx.Request().Context(), subjectId)
	if err != nil && set != nil && errors.Is(err, pkg.ErrReconciliationDegraded) {
		observe("reconcile", err)
		if set.Records == nil {
			set.Records = []pkg.FileRecord{}
		}
		body := degradedRecords{ErrorResponse: ErrorResponse{Kind: kindName(err), Message: err.Error()}, RecordSet: set}
		return ctx.JSON(StatusFor(err), body)
	}
	if err != nil {
		return w.failure(ctx, "reconcile", err)
	}
	observe("reconcile", nil)
	return ctx.JSON(http.StatusOK, set)
}

// UploadRecord pins the multipart "file" field and references it on-chain.
func (w *Wrapper) UploadRecord(ctx echo.Context, subjectId string) error {
	request := pkg.UploadRequest{
		SubjectID:     subjectId,
		Description:   ctx.FormValue("description"),
		Author:        ctx.FormValue("author"),
		PatientWallet: ctx.FormValue("patientWallet"),
	}
	header, err := ctx.FormFile("file")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Kind: string(pkg.KindInvalidInput), Message: "missing file: " + err.Error()})
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	// one byte past the limit is enough for the size check
	if request.Content, err = io.ReadAll(io.LimitReader(file, w.maxUploadSize()+1)); err != nil {
		return err
	}
	request.FileName = header.Filename

	result, err := w.Cl.UploadRecord(ctx.Request().Context(), w.Flows.Get(OperationUpload, subjectId), request)
	if err != nil {
		return w.failure(ctx, OperationUpload, err)
	}
	observe(OperationUpload, nil)
	return ctx.JSON(http.StatusOK, result)
}

// DeleteRecord deletes the on-chain record at index.
func (w *Wrapper) DeleteRecord(ctx echo.Context, subjectId string, index uint64) error {
	result, err := w.Cl.DeleteRecord(ctx.Request().Context(), subjectId, index)
	if err != nil {
		return w.failure(ctx, "delete-record", err)
	}
	observe("delete-record", nil)
	return ctx.JSON(http.StatusOK, result)
}

// GrantPermission grants a doctor access to the records of the patient.
func (w *Wrapper) GrantPermission(ctx echo.Context, subjectId string) error {
	request := new(GrantPermissionRequest)
	if err := ctx.Bind(request); err != nil {
		ctx.Logger().Error("Could not unmarshal json body:", err)
		return err
	}
	flow := w.Flows.Get(OperationGrant, subjectId)
	if err := w.Cl.GrantPermission(ctx.Request().Context(), flow, request.Grant(subjectId)); err != nil {
		return w.failure(ctx, OperationGrant, err)
	}
	observe(OperationGrant, nil)
	return ctx.JSON(http.StatusOK, flow.Status())
}

// CreatePrescription stores a diagnosis and prescription as a text-only record.
func (w *Wrapper) CreatePrescription(ctx echo.Context, subjectId string) error {
	request := new(CreatePrescriptionRequest)
	if err := ctx.Bind(request); err != nil {
		ctx.Logger().Error("Could not unmarshal json body:", err)
		return err
	}
	flow := w.Flows.Get(OperationPrescription, subjectId)
	if err := w.Cl.CreatePrescription(ctx.Request().Context(), flow, request.ToPrescription(subjectId)); err != nil {
		return w.failure(ctx, OperationPrescription, err)
	}
	observe(OperationPrescription, nil)
	return ctx.JSON(http.StatusOK, flow.Status())
}

// GetFlow returns the state of the form for operation and patient.
func (w *Wrapper) GetFlow(ctx echo.Context, subjectId string, operation string) error {
	if !operations[operation] {
		return echo.NewHTTPError(http.StatusNotFound, "unknown operation "+operation)
	}
	return ctx.JSON(http.StatusOK, w.Flows.Status(operation, subjectId))
}

// ResetFlow moves a finished form back to Idle.
func (w *Wrapper) ResetFlow(ctx echo.Context, subjectId string, operation string) error {
	if !operations[operation] {
		return echo.NewHTTPError(http.StatusNotFound, "unknown operation "+operation)
	}
	status, err := w.Flows.Reset(operation, subjectId)
	if err != nil {
		return w.failure(ctx, "reset", err)
	}
	return ctx.JSON(http.StatusOK, status)
}

// SweepOrphans unpins uploads that were never referenced on-chain.
func (w *Wrapper) SweepOrphans(ctx echo.Context, params SweepOrphansParams) error {
	grace, err := params.GraceDuration()
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Kind: string(pkg.KindInvalidInput), Message: err.Error()})
	}
	report, err := w.Cl.SweepOrphans(ctx.Request().Context(), grace)
	if err != nil {
		return w.failure(ctx, "sweep", err)
	}
	observe("sweep", nil)
	return ctx.JSON(http.StatusOK, report)
}

func (w *Wrapper) failure(ctx echo.Context, operation string, err error) error {
	observe(operation, err)
	response := ErrorResponse{Kind: kindName(err), Message: err.Error()}
	return ctx.JSON(StatusFor(err), response)
}

func kindName(err error) string {
	switch {
	case errors.Is(err, pkg.ErrFlowBusy):
		return "FlowBusy"
	case errors.Is(err, pkg.ErrResetRequired):
		return "ResetRequired"
	}
	return string(pkg.KindOf(err))
}

// StatusFor maps an orchestration error to an HTTP status code.
func StatusFor(err error) int {
	if errors.Is(err, pkg.ErrFlowBusy) || errors.Is(err, pkg.ErrResetRequired) {
		return http.StatusConflict
	}
	switch pkg.KindOf(err) {
	case pkg.KindInvalidInput:
		return http.StatusBadRequest
	case pkg.KindAuthDenied:
		return http.StatusUnauthorized
	case pkg.KindNotRegistered, pkg.KindUnknownDoctor:
		return http.StatusNotFound
	case pkg.KindPinningFailed, pkg.KindChainReadFailed, pkg.KindChainWriteFailed, pkg.KindReconciliationDegraded:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
