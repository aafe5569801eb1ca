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

package pkg_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/healthhub/hh-records-logic/pkg/mock"
	"github.com/healthhub/hh-records-logic/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mocks struct {
	chain   *mock.MockContractGateway
	pinning *mock.MockPinningClient
	wallet  *mock.MockWalletSession
}

func newRecordsLogic(ctrl *gomock.Controller) (*pkg.RecordsLogic, mocks) {
	m := mocks{
		chain:   mock.NewMockContractGateway(ctrl),
		pinning: mock.NewMockPinningClient(ctrl),
		wallet:  mock.NewMockWalletSession(ctrl),
	}
	return pkg.NewTestRecordsLogicInstance(m.chain, m.pinning, m.wallet), m
}

// anyDate matches the record date argument, its format is checked by assertISODate.
var anyDate = gomock.AssignableToTypeOf("")

func assertISODate(t *testing.T) func(context.Context, pkg.Identity, string, string, string, pkg.Identity, string) {
	return func(_ context.Context, _ pkg.Identity, _ string, date string, _ string, _ pkg.Identity, _ string) {
		assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), date)
	}
}

func TestRecordsLogic_UploadRecord(t *testing.T) {
	ctx := context.Background()
	signer := test.Identity(1)
	report := []byte("%PDF-1.4 report")

	t.Run("registered subject is pinned, written on-chain and reconciled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)

		gomock.InOrder(
			m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH100").Return(true, nil),
			m.pinning.EXPECT().PinFile(gomock.Any(), "report.pdf", report, map[string]string{pkg.MetaSubjectID: "HH100"}).Return("Qm123", nil),
			m.wallet.EXPECT().RequestAccounts(gomock.Any()).Return([]pkg.Identity{signer}, nil),
			m.chain.EXPECT().AddPatientRecord(gomock.Any(), signer, "HH100", anyDate, pkg.DefaultUploadDescription, signer, "Qm123").Do(assertISODate(t)).Return(nil),
		)
		m.chain.EXPECT().GetPatientRecords(gomock.Any(), "HH100").Return([]pkg.FileRecord{test.ChainRecord("0", "Qm123", signer)}, nil)
		m.pinning.EXPECT().ListPinned(gomock.Any(), pkg.PinFilter{}).Return([]pkg.PinnedFile{test.Pin("Qm123", "HH100", 0)}, nil)

		flow := pkg.NewFlow()
		result, err := rl.UploadRecord(ctx, flow, pkg.UploadRequest{SubjectID: "HH100", FileName: "report.pdf", Content: report})

		require.NoError(t, err)
		assert.Equal(t, "Qm123", result.ContentHash)
		assert.Equal(t, signer, result.Author)
		if assert.Len(t, result.Records.Records, 1) {
			assert.Equal(t, "Qm123", result.Records.Records[0].ContentHash)
			assert.Equal(t, pkg.OriginChain, result.Records.Records[0].Origin)
		}
		status := flow.Status()
		assert.Equal(t, pkg.StateSucceeded, status.State)
		assert.Equal(t, "Qm123", status.ContentHash)
		assert.NotEmpty(t, status.RunID)
	})

	t.Run("unregistered subject is rejected before any upload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH999").Return(false, nil)
		m.pinning.EXPECT().PinFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		m.chain.EXPECT().AddPatientRecord(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		flow := pkg.NewFlow()
		result, err := rl.UploadRecord(ctx, flow, pkg.UploadRequest{SubjectID: "HH999", FileName: "report.pdf", Content: report})

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, pkg.ErrNotRegistered))
		assert.Equal(t, pkg.KindNotRegistered, pkg.KindOf(err))
		assert.Equal(t, pkg.StateFailed, flow.Status().State)
		assert.Equal(t, pkg.KindNotRegistered, flow.Status().Kind)
	})

	t.Run("registry read failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH100").Return(false, errors.New("connection refused"))

		_, err := rl.UploadRecord(ctx, pkg.NewFlow(), pkg.UploadRequest{SubjectID: "HH100", Content: report})

		assert.Equal(t, pkg.KindChainReadFailed, pkg.KindOf(err))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("pinning failure prevents the chain write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH100").Return(true, nil)
		m.pinning.EXPECT().PinFile(gomock.Any(), gomock.Any(), report, gomock.Any()).Return("", errors.New("502 bad gateway"))

		_, err := rl.UploadRecord(ctx, pkg.NewFlow(), pkg.UploadRequest{SubjectID: "HH100", Content: report})

		assert.Equal(t, pkg.KindPinningFailed, pkg.KindOf(err))
	})

	t.Run("empty content hash from the pinning service is a pinning failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH100").Return(true, nil)
		m.pinning.EXPECT().PinFile(gomock.Any(), gomock.Any(), report, gomock.Any()).Return("", nil)

		_, err := rl.UploadRecord(ctx, pkg.NewFlow(), pkg.UploadRequest{SubjectID: "HH100", Content: report})

		assert.Equal(t, pkg.KindPinningFailed, pkg.KindOf(err))
	})

	t.Run("wallet rejection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH100").Return(true, nil)
		m.pinning.EXPECT().PinFile(gomock.Any(), gomock.Any(), report, gomock.Any()).Return("Qm123", nil)
		m.wallet.EXPECT().RequestAccounts(gomock.Any()).Return(nil, errors.New("user rejected the request"))

		_, err := rl.UploadRecord(ctx, pkg.NewFlow(), pkg.UploadRequest{SubjectID: "HH100", Content: report})

		assert.Equal(t, pkg.KindAuthDenied, pkg.KindOf(err))
	})

	t.Run("wallet without accounts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH100").Return(true, nil)
		m.pinning.EXPECT().PinFile(gomock.Any(), gomock.Any(), report, gomock.Any()).Return("Qm123", nil)
		m.wallet.EXPECT().RequestAccounts(gomock.Any()).Return([]pkg.Identity{}, nil)

		_, err := rl.UploadRecord(ctx, pkg.NewFlow(), pkg.UploadRequest{SubjectID: "HH100", Content: report})

		assert.Equal(t, pkg.KindAuthDenied, pkg.KindOf(err))
	})

	t.Run("reverted transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH100").Return(true, nil)
		m.pinning.EXPECT().PinFile(gomock.Any(), gomock.Any(), report, gomock.Any()).Return("Qm123", nil)
		m.wallet.EXPECT().RequestAccounts(gomock.Any()).Return([]pkg.Identity{signer}, nil)
		m.chain.EXPECT().AddPatientRecord(gomock.Any(), signer, "HH100", anyDate, gomock.Any(), signer, "Qm123").Return(errors.New("execution reverted"))

		flow := pkg.NewFlow()
		_, err := rl.UploadRecord(ctx, flow, pkg.UploadRequest{SubjectID: "HH100", Content: report})

		assert.Equal(t, pkg.KindChainWriteFailed, pkg.KindOf(err))
		assert.Equal(t, pkg.KindChainWriteFailed, flow.Status().Kind)
		assert.Empty(t, flow.Status().ContentHash)
	})

	t.Run("author override and patient wallet are tagged and written", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		author := test.Identity(2)
		patientWallet := test.Identity(3)
		keyValues := map[string]string{
			pkg.MetaSubjectID:     "HH100",
			pkg.MetaAuthor:        author.String(),
			pkg.MetaPatientWallet: patientWallet.String(),
		}
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH100").Return(true, nil)
		m.pinning.EXPECT().PinFile(gomock.Any(), "scan.png", report, keyValues).Return("QmScan", nil)
		m.wallet.EXPECT().RequestAccounts(gomock.Any()).Return([]pkg.Identity{signer}, nil)
		m.chain.EXPECT().AddPatientRecord(gomock.Any(), signer, "HH100", anyDate, "Diagnostic Report", author, "QmScan").Return(nil)
		m.chain.EXPECT().GetPatientRecords(gomock.Any(), "HH100").Return(nil, nil)
		m.pinning.EXPECT().ListPinned(gomock.Any(), gomock.Any()).Return(nil, nil)

		result, err := rl.UploadRecord(ctx, pkg.NewFlow(), pkg.UploadRequest{
			SubjectID:     "HH100",
			FileName:      "scan.png",
			Content:       report,
			Description:   "Diagnostic Report",
			Author:        strings.ToLower(author.String()),
			PatientWallet: patientWallet.String(),
		})

		require.NoError(t, err)
		assert.Equal(t, author, result.Author)
	})

	t.Run("degraded reconciliation after a successful upload is a warning", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH100").Return(true, nil)
		m.pinning.EXPECT().PinFile(gomock.Any(), gomock.Any(), report, gomock.Any()).Return("Qm123", nil)
		m.wallet.EXPECT().RequestAccounts(gomock.Any()).Return([]pkg.Identity{signer}, nil)
		m.chain.EXPECT().AddPatientRecord(gomock.Any(), signer, "HH100", anyDate, gomock.Any(), signer, "Qm123").Return(nil)
		m.chain.EXPECT().GetPatientRecords(gomock.Any(), "HH100").Return(nil, errors.New("timeout"))
		m.pinning.EXPECT().ListPinned(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		result, err := rl.UploadRecord(ctx, pkg.NewFlow(), pkg.UploadRequest{SubjectID: "HH100", Content: report})

		require.NoError(t, err)
		assert.Equal(t, "Qm123", result.ContentHash)
		assert.Empty(t, result.Records.Records)
		assert.NotEmpty(t, result.Records.Warnings)
	})

	t.Run("invalid input makes no external calls", func(t *testing.T) {
		requests := map[string]pkg.UploadRequest{
			"empty subject":   {SubjectID: " ", Content: report},
			"no file":         {SubjectID: "HH100"},
			"too large":       {SubjectID: "HH100", Content: make([]byte, 2048)},
			"invalid author":  {SubjectID: "HH100", Content: report, Author: "not-an-address"},
			"invalid patient": {SubjectID: "HH100", Content: report, PatientWallet: "0x123"},
		}
		for name, request := range requests {
			t.Run(name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				rl, _ := newRecordsLogic(ctrl)

				_, err := rl.UploadRecord(ctx, pkg.NewFlow(), request)

				assert.Equal(t, pkg.KindInvalidInput, pkg.KindOf(err))
			})
		}
	})

	t.Run("a finished flow must be reset before the next upload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rl, m := newRecordsLogic(ctrl)
		m.chain.EXPECT().IsSubjectRegistered(gomock.Any(), "HH999").Return(false, nil).Times(2)

		flow := pkg.NewFlow()
		_, err := rl.UploadRecord(ctx, flow, pkg.UploadRequest{SubjectID: "HH999", Content: report})
		assert.Equal(t, pkg.KindNotRegistered, pkg.KindOf(err))

		_, err = rl.UploadRecord(ctx, flow, pkg.UploadRequest{SubjectID: "HH999", Content: report})
		assert.True(t, errors.Is(err, pkg.ErrResetRequired))

		require.NoError(t, flow.Reset())
		_, err = rl.UploadRecord(ctx, flow, pkg.UploadRequest{SubjectID: "HH999", Content: report})
		assert.Equal(t, pkg.KindNotRegistered, pkg.KindOf(err))
	})
}
