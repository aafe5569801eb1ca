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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/healthhub/hh-records-logic/pkg/mock"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	echo  *echo.Echo
	cl    *mock.MockRecordsLogicClient
	flows *pkg.FlowRegistry
}

func newTestServer(ctrl *gomock.Controller) testServer {
	server := testServer{echo: echo.New(), cl: mock.NewMockRecordsLogicClient(ctrl), flows: pkg.NewFlowRegistry()}
	RegisterHandlers(server.echo, &Wrapper{Cl: server.cl, Flows: server.flows})
	RegisterMetrics(server.echo)
	return server
}

func (s testServer) do(method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	response := ErrorResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func failure(kind error, message string) error {
	return fmt.Errorf("%w: %s", kind, message)
}

func TestWrapper_ListRecords(t *testing.T) {
	t.Run("degraded read is returned with warnings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().ReconcileRecords(gomock.Any(), "HH100").Return(&pkg.RecordSet{
			SubjectID: "HH100",
			Records:   []pkg.FileRecord{{RecordID: "0", ContentHash: "QmA", Origin: pkg.OriginChain}},
			Warnings:  []string{"pinning service failure"},
		}, nil)

		rec := server.do(http.MethodGet, "/api/patients/HH100/records", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		set := pkg.RecordSet{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
		assert.Len(t, set.Records, 1)
		assert.Equal(t, []string{"pinning service failure"}, set.Warnings)
	})

	t.Run("both sources down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().ReconcileRecords(gomock.Any(), "HH100").Return(&pkg.RecordSet{
			SubjectID: "HH100",
			Warnings:  []string{"chain read failed", "pinning service failure"},
		}, failure(pkg.ErrReconciliationDegraded, "both down"))

		rec := server.do(http.MethodGet, "/api/patients/HH100/records", nil, "")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "ReconciliationDegraded", decodeError(t, rec).Kind)
		assert.Contains(t, rec.Body.String(), `"records":[]`)
		set := pkg.RecordSet{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
		assert.Equal(t, "HH100", set.SubjectID)
		assert.Len(t, set.Warnings, 2)
	})

	t.Run("other failures carry no record set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().ReconcileRecords(gomock.Any(), "HH100").Return(&pkg.RecordSet{Records: []pkg.FileRecord{}}, failure(pkg.ErrInvalidInput, "subject id is empty"))

		rec := server.do(http.MethodGet, "/api/patients/HH100/records", nil, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotContains(t, rec.Body.String(), `"records"`)
	})
}

func TestWrapper_UploadRecord(t *testing.T) {
	multipartBody := func(t *testing.T, withFile bool) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		if withFile {
			part, err := writer.CreateFormFile("file", "report.pdf")
			require.NoError(t, err)
			_, _ = part.Write([]byte("%PDF"))
		}
		require.NoError(t, writer.WriteField("description", "Diagnostic Report"))
		require.NoError(t, writer.WriteField("author", "0x00000000000000000000000000000000000000d1"))
		require.NoError(t, writer.Close())
		return body, writer.FormDataContentType()
	}

	t.Run("file and form fields reach the orchestrator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().UploadRecord(gomock.Any(), server.flows.Get(OperationUpload, "HH100"), pkg.UploadRequest{
			SubjectID:   "HH100",
			FileName:    "report.pdf",
			Content:     []byte("%PDF"),
			Description: "Diagnostic Report",
			Author:      "0x00000000000000000000000000000000000000d1",
		}).Return(&pkg.UploadResult{ContentHash: "Qm123"}, nil)

		body, contentType := multipartBody(t, true)
		rec := server.do(http.MethodPost, "/api/patients/HH100/records", body, contentType)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"contentHash":"Qm123"`)
	})

	t.Run("file read stops one byte past the upload limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		router := echo.New()
		RegisterHandlers(router, &Wrapper{Cl: server.cl, Flows: server.flows, MaxUploadSize: 2})
		server.cl.EXPECT().UploadRecord(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *pkg.Flow, request pkg.UploadRequest) (*pkg.UploadResult, error) {
			assert.Equal(t, []byte("%PD"), request.Content)
			return nil, failure(pkg.ErrInvalidInput, "file exceeds 2 bytes")
		})

		body, contentType := multipartBody(t, true)
		req := httptest.NewRequest(http.MethodPost, "/api/patients/HH100/records", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)

		body, contentType := multipartBody(t, false)
		rec := server.do(http.MethodPost, "/api/patients/HH100/records", body, contentType)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "InvalidInput", decodeError(t, rec).Kind)
	})

	t.Run("unregistered subject", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().UploadRecord(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, failure(pkg.ErrNotRegistered, "subject HH999"))

		body, contentType := multipartBody(t, true)
		rec := server.do(http.MethodPost, "/api/patients/HH999/records", body, contentType)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NotRegistered", decodeError(t, rec).Kind)
	})

	t.Run("finished flow needs a reset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().UploadRecord(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, pkg.ErrResetRequired)

		body, contentType := multipartBody(t, true)
		rec := server.do(http.MethodPost, "/api/patients/HH100/records", body, contentType)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "ResetRequired", decodeError(t, rec).Kind)
	})
}

func TestWrapper_GrantPermission(t *testing.T) {
	t.Run("unknown doctor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		before := testutil.ToFloat64(operationsTotal.WithLabelValues(OperationGrant, "UnknownDoctor"))
		server.cl.EXPECT().GrantPermission(gomock.Any(), gomock.Any(), pkg.GrantRequest{PatientID: "HH100", DoctorID: "DOC42"}).Return(failure(pkg.ErrUnknownDoctor, "DOC42"))

		rec := server.do(http.MethodPost, "/api/patients/HH100/permissions", bytes.NewBufferString(`{"doctorId":"DOC42"}`), echo.MIMEApplicationJSON)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "UnknownDoctor", decodeError(t, rec).Kind)
		assert.Equal(t, before+1, testutil.ToFloat64(operationsTotal.WithLabelValues(OperationGrant, "UnknownDoctor")))
	})

	t.Run("ok returns the flow status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().GrantPermission(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		rec := server.do(http.MethodPost, "/api/patients/HH100/permissions", bytes.NewBufferString(`{"doctorId":"DOC1"}`), echo.MIMEApplicationJSON)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"state":"Idle"`)
	})
}

func TestWrapper_CreatePrescription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server := newTestServer(ctrl)
	server.cl.EXPECT().CreatePrescription(gomock.Any(), server.flows.Get(OperationPrescription, "HH100"), pkg.PrescriptionRequest{SubjectID: "HH100", Diagnosis: "flu", Prescription: "rest"}).Return(nil)

	rec := server.do(http.MethodPost, "/api/patients/HH100/prescriptions", bytes.NewBufferString(`{"diagnosis":"flu","prescription":"rest"}`), echo.MIMEApplicationJSON)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWrapper_Patients(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().ListPatients(gomock.Any()).Return([]pkg.PatientRecord{{SubjectID: "HH100", Name: "Jane"}}, nil)

		rec := server.do(http.MethodGet, "/api/patients", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"subjectId":"HH100"`)
	})

	t.Run("details read failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().PatientDetails(gomock.Any(), "HH100").Return(nil, failure(pkg.ErrChainReadFailed, "timeout"))

		rec := server.do(http.MethodGet, "/api/patients/HH100", nil, "")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("remove", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().RemovePatient(gomock.Any(), "HH100").Return(nil)

		rec := server.do(http.MethodDelete, "/api/patients/HH100", nil, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("remove denied by wallet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().RemovePatient(gomock.Any(), "HH100").Return(failure(pkg.ErrAuthDenied, "locked"))

		rec := server.do(http.MethodDelete, "/api/patients/HH100", nil, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestWrapper_DeleteRecord(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().DeleteRecord(gomock.Any(), "HH100", uint64(2)).Return(&pkg.DeleteResult{SubjectID: "HH100", Index: 2, Unpinned: true}, nil)

		rec := server.do(http.MethodDelete, "/api/patients/HH100/records/2", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unpinned":true`)
	})

	t.Run("invalid index", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)

		rec := server.do(http.MethodDelete, "/api/patients/HH100/records/first", nil, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWrapper_Flows(t *testing.T) {
	t.Run("get and reset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)

		rec := server.do(http.MethodGet, "/api/patients/HH100/flows/upload", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"state":"Idle"`)
		assert.Equal(t, 0, server.flows.Len())

		rec = server.do(http.MethodDelete, "/api/patients/HH100/flows/upload", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("reset drops a finished flow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().GrantPermission(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		rec := server.do(http.MethodPost, "/api/patients/HH100/permissions", bytes.NewBufferString(`{"doctorId":"DOC1"}`), echo.MIMEApplicationJSON)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, server.flows.Len())

		rec = server.do(http.MethodDelete, "/api/patients/HH100/flows/grant", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"state":"Idle"`)
		assert.Equal(t, 0, server.flows.Len())
	})

	t.Run("unknown operation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)

		rec := server.do(http.MethodGet, "/api/patients/HH100/flows/transfer", nil, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWrapper_SweepOrphans(t *testing.T) {
	t.Run("grace is passed on", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)
		server.cl.EXPECT().SweepOrphans(gomock.Any(), 2*time.Hour).Return(&pkg.SweepReport{Checked: 1, Unpinned: []string{"QmA"}}, nil)

		rec := server.do(http.MethodPost, "/api/sweep?grace=2h", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unpinned":["QmA"]`)
	})

	t.Run("invalid grace", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		server := newTestServer(ctrl)

		rec := server.do(http.MethodPost, "/api/sweep?grace=soon", nil, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBodyLimit(t *testing.T) {
	router := echo.New()
	router.Use(BodyLimit(10))
	router.POST("/api/patients/HH100/records", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusNoContent)
	})
	post := func(size int) int {
		req := httptest.NewRequest(http.MethodPost, "/api/patients/HH100/records", bytes.NewReader(make([]byte, size)))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, post(1024))
	assert.Equal(t, http.StatusRequestEntityTooLarge, post(2<<20))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusFor(pkg.ErrFlowBusy))
	assert.Equal(t, http.StatusBadRequest, StatusFor(failure(pkg.ErrInvalidInput, "x")))
	assert.Equal(t, http.StatusBadGateway, StatusFor(failure(pkg.ErrPinningFailed, "x")))
	assert.Equal(t, http.StatusBadGateway, StatusFor(failure(pkg.ErrChainWriteFailed, "x")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestRegisterMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server := newTestServer(ctrl)
	observe("sweep", nil)

	rec := server.do(http.MethodGet, MetricsPath, nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "hh_records_operations_total"))
}
