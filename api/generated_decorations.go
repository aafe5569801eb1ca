package api

import (
	"fmt"
	"time"

	"github.com/healthhub/hh-records-logic/pkg"
)

// Grant returns the grant of DoctorId over the records of subjectID.
func (r GrantPermissionRequest) Grant(subjectID string) pkg.GrantRequest {
	return pkg.GrantRequest{PatientID: subjectID, DoctorID: r.DoctorId}
}

// ToPrescription returns the prescription for subjectID, absent fields are empty.
func (r CreatePrescriptionRequest) ToPrescription(subjectID string) pkg.PrescriptionRequest {
	request := pkg.PrescriptionRequest{SubjectID: subjectID}
	if r.Diagnosis != nil {
		request.Diagnosis = *r.Diagnosis
	}
	if r.Prescription != nil {
		request.Prescription = *r.Prescription
	}
	return request
}

// GraceDuration parses Grace. An absent grace is zero, which selects the default grace.
func (p SweepOrphansParams) GraceDuration() (time.Duration, error) {
	if p.Grace == nil || *p.Grace == "" {
		return 0, nil
	}
	grace, err := time.ParseDuration(*p.Grace)
	if err != nil {
		return 0, fmt.Errorf("invalid grace: %w", err)
	}
	if grace < 0 {
		return 0, fmt.Errorf("invalid grace: %s is negative", *p.Grace)
	}
	return grace, nil
}
