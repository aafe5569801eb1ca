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

package chain

import (
	"context"
	"math/big"
	"strings"

	"emperror.dev/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/sirupsen/logrus"
)

// RegistryABI is the subset of the patient registry contract used by the gateway.
const RegistryABI = `[
{"type":"function","name":"isPatientRegistered","stateMutability":"view","inputs":[{"name":"hhNumber","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"isDoctorRegistered","stateMutability":"view","inputs":[{"name":"hhNumber","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"getAllPatients","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":[
	{"name":"walletAddress","type":"address"},{"name":"name","type":"string"},{"name":"dateOfBirth","type":"string"},
	{"name":"gender","type":"string"},{"name":"bloodGroup","type":"string"},{"name":"homeAddress","type":"string"},
	{"name":"email","type":"string"},{"name":"hhNumber","type":"string"}]}]},
{"type":"function","name":"getPatientDetails","stateMutability":"view","inputs":[{"name":"hhNumber","type":"string"}],"outputs":[{"name":"","type":"tuple","components":[
	{"name":"walletAddress","type":"address"},{"name":"name","type":"string"},{"name":"dateOfBirth","type":"string"},
	{"name":"gender","type":"string"},{"name":"bloodGroup","type":"string"},{"name":"homeAddress","type":"string"},
	{"name":"email","type":"string"},{"name":"hhNumber","type":"string"}]}]},
{"type":"function","name":"getPatientRecords","stateMutability":"view","inputs":[{"name":"hhNumber","type":"string"}],"outputs":[{"name":"","type":"tuple[]","components":[
	{"name":"id","type":"uint256"},{"name":"date","type":"string"},{"name":"description","type":"string"},
	{"name":"doctor","type":"string"},{"name":"ipfsHash","type":"string"}]}]},
{"type":"function","name":"addPatientRecord","stateMutability":"nonpayable","inputs":[
	{"name":"hhNumber","type":"string"},{"name":"date","type":"string"},{"name":"description","type":"string"},
	{"name":"doctor","type":"string"},{"name":"ipfsHash","type":"string"}],"outputs":[]},
{"type":"function","name":"deletePatientRecord","stateMutability":"nonpayable","inputs":[{"name":"hhNumber","type":"string"},{"name":"recordIndex","type":"uint256"}],"outputs":[]},
{"type":"function","name":"grantDoctorPermission","stateMutability":"nonpayable","inputs":[{"name":"patientNumber","type":"string"},{"name":"doctorNumber","type":"string"}],"outputs":[]},
{"type":"function","name":"removePatient","stateMutability":"nonpayable","inputs":[{"name":"hhNumber","type":"string"}],"outputs":[]}
]`

const (
	// DefaultUploadGas is the gas limit of a record write that references a pinned file.
	DefaultUploadGas = uint64(300000)
	// DefaultWriteGas is the gas limit of every other write.
	DefaultWriteGas = uint64(200000)
)

// ErrReverted is returned when a mined transaction has a failed receipt.
const ErrReverted = errors.Sentinel("transaction reverted")

// Backend is the JSON-RPC surface the gateway needs; *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Signer produces transact options for a sender account.
type Signer interface {
	Transactor(ctx context.Context, from common.Address) (*bind.TransactOpts, error)
}

type Config struct {
	Contract  string
	UploadGas uint64
	WriteGas  uint64
}

// contractPatient mirrors the patient tuple, fields in ABI order.
type contractPatient struct {
	WalletAddress common.Address
	Name          string
	DateOfBirth   string
	Gender        string
	BloodGroup    string
	HomeAddress   string
	Email         string
	HhNumber      string
}

// contractRecord mirrors the record tuple, fields in ABI order.
type contractRecord struct {
	Id          *big.Int
	Date        string
	Description string
	Doctor      string
	IpfsHash    string
}

// Gateway implements pkg.ContractGateway on a bound registry contract.
type Gateway struct {
	contract *bind.BoundContract
	backend  Backend
	signer   Signer
	config   Config
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "chain")
}

// NewGateway binds the registry contract at config.Contract.
func NewGateway(backend Backend, signer Signer, config Config) (*Gateway, error) {
	if !common.IsHexAddress(config.Contract) {
		return nil, errors.Errorf("invalid contract address: %q", config.Contract)
	}
	parsed, err := abi.JSON(strings.NewReader(RegistryABI))
	if err != nil {
		return nil, errors.Wrap(err, "could not parse registry abi")
	}
	if config.UploadGas == 0 {
		config.UploadGas = DefaultUploadGas
	}
	if config.WriteGas == 0 {
		config.WriteGas = DefaultWriteGas
	}
	address := common.HexToAddress(config.Contract)
	return &Gateway{
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		backend:  backend,
		signer:   signer,
		config:   config,
	}, nil
}

func (g *Gateway) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, errors.WrapIff(err, "call %s", method)
	}
	if len(out) == 0 {
		return nil, errors.Errorf("call %s: empty result", method)
	}
	return out, nil
}

func (g *Gateway) callBool(ctx context.Context, method string, args ...interface{}) (bool, error) {
	out, err := g.call(ctx, method, args...)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (g *Gateway) IsSubjectRegistered(ctx context.Context, subjectID string) (bool, error) {
	return g.callBool(ctx, "isPatientRegistered", subjectID)
}

func (g *Gateway) IsDoctorRegistered(ctx context.Context, doctorID string) (bool, error) {
	return g.callBool(ctx, "isDoctorRegistered", doctorID)
}

func (g *Gateway) GetAllPatients(ctx context.Context) ([]pkg.PatientRecord, error) {
	out, err := g.call(ctx, "getAllPatients")
	if err != nil {
		return nil, err
	}
	rows := *abi.ConvertType(out[0], new([]contractPatient)).(*[]contractPatient)
	patients := make([]pkg.PatientRecord, 0, len(rows))
	for _, row := range rows {
		patients = append(patients, row.toPatient())
	}
	return patients, nil
}

func (g *Gateway) GetPatientDetails(ctx context.Context, subjectID string) (pkg.PatientRecord, error) {
	out, err := g.call(ctx, "getPatientDetails", subjectID)
	if err != nil {
		return pkg.PatientRecord{}, err
	}
	row := *abi.ConvertType(out[0], new(contractPatient)).(*contractPatient)
	return row.toPatient(), nil
}

func (g *Gateway) GetPatientRecords(ctx context.Context, subjectID string) ([]pkg.FileRecord, error) {
	out, err := g.call(ctx, "getPatientRecords", subjectID)
	if err != nil {
		return nil, err
	}
	rows := *abi.ConvertType(out[0], new([]contractRecord)).(*[]contractRecord)
	records := make([]pkg.FileRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (g *Gateway) AddPatientRecord(ctx context.Context, from pkg.Identity, subjectID, date, description string, author pkg.Identity, contentHash string) error {
	gas := g.config.WriteGas
	if contentHash != "" {
		gas = g.config.UploadGas
	}
	return g.transact(ctx, from, gas, "addPatientRecord", subjectID, date, description, author.String(), contentHash)
}

func (g *Gateway) DeletePatientRecord(ctx context.Context, from pkg.Identity, subjectID string, index *big.Int) error {
	return g.transact(ctx, from, g.config.WriteGas, "deletePatientRecord", subjectID, index)
}

func (g *Gateway) GrantDoctorPermission(ctx context.Context, from pkg.Identity, patientID, doctorID string) error {
	return g.transact(ctx, from, g.config.WriteGas, "grantDoctorPermission", patientID, doctorID)
}

func (g *Gateway) RemovePatient(ctx context.Context, from pkg.Identity, subjectID string) error {
	return g.transact(ctx, from, g.config.WriteGas, "removePatient", subjectID)
}

// transact sends method from the given account and waits until it is mined.
func (g *Gateway) transact(ctx context.Context, from pkg.Identity, gas uint64, method string, args ...interface{}) error {
	if g.signer == nil {
		return errors.Errorf("%s: no signer configured", method)
	}
	opts, err := g.signer.Transactor(ctx, from.Address())
	if err != nil {
		return errors.WrapIff(err, "%s: signer", method)
	}
	opts.Context = ctx
	opts.GasLimit = gas

	tx, err := g.contract.Transact(opts, method, args...)
	if err != nil {
		return errors.WrapIff(err, "send %s", method)
	}
	logger().Debugf("%s sent as %s, waiting to be mined", method, tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, g.backend, tx)
	if err != nil {
		return errors.WrapIff(err, "wait for %s", tx.Hash().Hex())
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return errors.WithDetails(ErrReverted, "method", method, "tx", tx.Hash().Hex(), "gasUsed", receipt.GasUsed)
	}
	logger().Debugf("%s mined in block %s", method, receipt.BlockNumber)
	return nil
}

func (p contractPatient) toPatient() pkg.PatientRecord {
	return pkg.PatientRecord{
		SubjectID:     p.HhNumber,
		Name:          p.Name,
		DateOfBirth:   p.DateOfBirth,
		Gender:        p.Gender,
		BloodGroup:    p.BloodGroup,
		HomeAddress:   p.HomeAddress,
		Email:         p.Email,
		WalletAddress: pkg.Identity(p.WalletAddress.Hex()),
	}
}

func (r contractRecord) toRecord() pkg.FileRecord {
	record := pkg.FileRecord{
		Date:        r.Date,
		Description: r.Description,
		ContentHash: strings.TrimSpace(r.IpfsHash),
		Origin:      pkg.OriginChain,
	}
	if r.Id != nil {
		record.RecordID = r.Id.String()
	}
	if author, err := pkg.ParseIdentity(r.Doctor); err == nil {
		record.Author = author
	}
	return record
}
