// Package provider holds the role-scoped data caches screens read from.
//
// A Provider is created only once an identity is known and is replaced
// whenever the identity changes (see Manager). Reads go through Collection
// caches; mutations call the lab API and invalidate what they touched.
package provider

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

// Provider is the data surface shared by every role.
type Provider interface {
	Role() domain.Role
	Patients(ctx context.Context) ([]domain.Patient, error)
	Patient(ctx context.Context, id string) (*domain.Patient, error)
	Tests(ctx context.Context) ([]domain.LabTest, error)
	Doctors(ctx context.Context) ([]domain.Doctor, error)
	Bills(ctx context.Context) ([]domain.Bill, error)
	AddPatient(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error)
	Loading() bool
	Refresh(ctx context.Context) error
}

type refresher interface {
	Name() string
	Loading() bool
	refresh(ctx context.Context) error
}

func (c *Collection[T]) refresh(ctx context.Context) error {
	_, err := c.Refresh(ctx)
	return err
}

// base carries the collections and mutations every role shares.
type base struct {
	api ports.LabAPI

	patients *Collection[[]domain.Patient]
	tests    *Collection[[]domain.LabTest]
	doctors  *Collection[[]domain.Doctor]
	bills    *Collection[[]domain.Bill]

	all []refresher
}

func newBase(api ports.LabAPI) base {
	b := base{
		api:      api,
		patients: NewCollection("patients", api.ListPatients),
		tests:    NewCollection("tests", api.ListTests),
		doctors:  NewCollection("doctors", api.ListDoctors),
		bills:    NewCollection("bills", api.ListBills),
	}
	b.all = []refresher{b.patients, b.tests, b.doctors, b.bills}
	return b
}

func (b *base) Patients(ctx context.Context) ([]domain.Patient, error) {
	return b.patients.Get(ctx)
}

// Patient looks the patient up in the cached registry first and falls back
// to the lab API for patients not yet listed.
func (b *base) Patient(ctx context.Context, id string) (*domain.Patient, error) {
	if list, err := b.patients.Get(ctx); err == nil {
		for i := range list {
			if list[i].ID == id {
				p := list[i]
				return &p, nil
			}
		}
	}
	return b.api.GetPatient(ctx, id)
}

func (b *base) Tests(ctx context.Context) ([]domain.LabTest, error) {
	return b.tests.Get(ctx)
}

func (b *base) Doctors(ctx context.Context) ([]domain.Doctor, error) {
	return b.doctors.Get(ctx)
}

func (b *base) Bills(ctx context.Context) ([]domain.Bill, error) {
	return b.bills.Get(ctx)
}

// AddPatient registers a patient after basic presence/range checks.
func (b *base) AddPatient(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", domain.ErrInvalidInput)
	}
	if in.Age < 0 || in.Age > 150 {
		return nil, fmt.Errorf("%w: age must be between 0 and 150", domain.ErrInvalidInput)
	}

	p, err := b.api.CreatePatient(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("add patient: %w", err)
	}
	b.patients.Invalidate()
	return p, nil
}

// Loading reports whether any collection is loading.
func (b *base) Loading() bool {
	for _, r := range b.all {
		if r.Loading() {
			return true
		}
	}
	return false
}

// Refresh reloads every collection concurrently.
func (b *base) Refresh(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range b.all {
		g.Go(func() error {
			if err := r.refresh(ctx); err != nil {
				return fmt.Errorf("refresh %s: %w", r.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
