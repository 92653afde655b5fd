package provider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

func TestCollection_CachesAfterFirstGet(t *testing.T) {
	api := newStubLabAPI()
	p := NewReceptionProvider(api)
	ctx := context.Background()

	for range 3 {
		list, err := p.Patients(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	assert.Equal(t, 1, api.count("patients"))
}

func TestCollection_ConcurrentGetsShareOneRequest(t *testing.T) {
	api := newStubLabAPI()
	api.block = make(chan struct{})
	p := NewReceptionProvider(api)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Patients(context.Background())
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return api.inflights.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, p.Loading())
	close(api.block)
	wg.Wait()

	assert.Equal(t, 1, api.count("patients"))
	assert.False(t, p.Loading())
}

func TestCollection_ErrorIsNotCached(t *testing.T) {
	api := newStubLabAPI()
	api.listErr = errors.New("boom")
	p := NewAdminProvider(api)

	_, err := p.Patients(context.Background())
	require.Error(t, err)

	api.listErr = nil
	list, err := p.Patients(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, api.count("patients"))
}

func TestProvider_RefreshReloadsEverything(t *testing.T) {
	api := newStubLabAPI()
	p := NewAdminProvider(api)
	ctx := context.Background()

	_, _ = p.Patients(ctx)
	_, _ = p.Expenses(ctx)
	require.NoError(t, p.Refresh(ctx))

	for _, name := range []string{"patients", "tests", "doctors", "bills", "expenses", "discounts", "metrics"} {
		assert.GreaterOrEqual(t, api.count(name), 1, name)
	}
	assert.Equal(t, 2, api.count("patients"))
	assert.Equal(t, 2, api.count("expenses"))
}

func TestProvider_AddPatientInvalidatesRegistry(t *testing.T) {
	api := newStubLabAPI()
	p := NewReceptionProvider(api)
	ctx := context.Background()

	_, _ = p.Patients(ctx)
	pt, err := p.AddPatient(ctx, ports.CreatePatientInput{Name: " Ravi ", Age: 40, Phone: "9000000002"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", pt.Name)

	list, err := p.Patients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, api.count("patients"))
}

func TestProvider_AddPatientValidation(t *testing.T) {
	api := newStubLabAPI()
	p := NewReceptionProvider(api)

	cases := []ports.CreatePatientInput{
		{Name: "", Phone: "1"},
		{Name: "A", Phone: " "},
		{Name: "A", Phone: "1", Age: -1},
		{Name: "A", Phone: "1", Age: 151},
	}
	for _, in := range cases {
		_, err := p.AddPatient(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, api.count("create_patient"))
}

func TestProvider_PatientPrefersCache(t *testing.T) {
	api := newStubLabAPI()
	p := NewReceptionProvider(api)
	ctx := context.Background()

	pt, err := p.Patient(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", pt.Name)
	assert.Zero(t, api.count("patient"))

	pt, err = p.Patient(ctx, "p-9")
	require.NoError(t, err)
	assert.Equal(t, "Remote", pt.Name)
	assert.Equal(t, 1, api.count("patient"))
}

func TestAdminProvider_CreateDiscount(t *testing.T) {
	api := newStubLabAPI()
	p := NewAdminProvider(api)
	ctx := context.Background()

	_, _ = p.Discounts(ctx)

	_, err := p.CreateDiscount(ctx, ports.CreateDiscountInput{Name: "x", Percent: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = p.CreateDiscount(ctx, ports.CreateDiscountInput{Name: "x", Percent: 101})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = p.CreateDiscount(ctx, ports.CreateDiscountInput{Name: "  ", Percent: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err := p.CreateDiscount(ctx, ports.CreateDiscountInput{Name: "Staff", Percent: 15})
	require.NoError(t, err)
	assert.True(t, d.Active)

	_, _ = p.Discounts(ctx)
	assert.Equal(t, 2, api.count("discounts"))
}

func TestAdminProvider_RevenueIsNotCached(t *testing.T) {
	api := newStubLabAPI()
	p := NewAdminProvider(api)

	r, err := p.Revenue(context.Background(), ports.RevenueQuery{From: "2026-01-01", To: "2026-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", r.From)
	_, _ = p.Revenue(context.Background(), ports.RevenueQuery{})
	assert.Equal(t, 2, api.count("revenue"))
}

func TestReceptionProvider_RecordPayment(t *testing.T) {
	api := newStubLabAPI()
	p := NewReceptionProvider(api)
	ctx := context.Background()

	_, err := p.RecordPayment(ctx, "b-1", ports.PaymentInput{Amount: 0, Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = p.RecordPayment(ctx, "b-1", ports.PaymentInput{Amount: 10, Method: "cheque"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = p.RecordPayment(ctx, "b-1", ports.PaymentInput{Amount: 301, Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, api.count("payment"))

	b, err := p.RecordPayment(ctx, "b-1", ports.PaymentInput{Amount: 300, Method: " Card "})
	require.NoError(t, err)
	assert.Equal(t, 300.0, b.Paid)

	_, _ = p.Bills(ctx)
	assert.Equal(t, 2, api.count("bills"))
}

func TestReceptionProvider_CreateBillInvalidatesOrders(t *testing.T) {
	api := newStubLabAPI()
	p := NewReceptionProvider(api)
	ctx := context.Background()

	_, err := p.CreateBill(ctx, ports.CreateBillInput{PatientID: "p-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _ = p.PendingOrders(ctx)
	_, err = p.CreateBill(ctx, ports.CreateBillInput{PatientID: "p-1", TestIDs: []string{"t-1"}})
	require.NoError(t, err)
	_, _ = p.PendingOrders(ctx)
	assert.Equal(t, 2, api.count("pending_orders"))
}

func TestReceptionProvider_Reports(t *testing.T) {
	p := NewReceptionProvider(newStubLabAPI())

	ready, err := p.Reports(context.Background())
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Equal(t, "b-2", ready[0].ID)
}

func TestReceptionProvider_AssignTests(t *testing.T) {
	api := newStubLabAPI()
	p := NewReceptionProvider(api)

	_, err := p.AssignTests(context.Background(), "o-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	o, err := p.AssignTests(context.Background(), "o-1", []string{"t-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t-1"}, o.TestIDs)
}

func TestManager_ProviderFollowsIdentity(t *testing.T) {
	m := NewManager(newStubLabAPI(), zerolog.Nop())

	assert.Nil(t, m.For(nil))
	assert.Nil(t, m.For(&domain.Identity{ID: "x", Token: "t"}))

	admin := &domain.Identity{ID: "a", Role: domain.RoleAdmin, Token: "t1"}
	p1 := m.For(admin)
	require.NotNil(t, p1)
	assert.Equal(t, domain.RoleAdmin, p1.Role())
	assert.Same(t, p1, m.For(admin))

	p2 := m.For(&domain.Identity{ID: "a", Role: domain.RoleAdmin, Token: "t2"})
	assert.NotSame(t, p1, p2)

	op := m.For(&domain.Identity{ID: "o", Role: domain.RoleOperator, Token: "t3"})
	require.NotNil(t, op)
	assert.Equal(t, domain.RoleOperator, op.Role())
	_, ok := op.(*ReceptionProvider)
	assert.True(t, ok)

	m.Reset()
	assert.NotSame(t, op, m.For(&domain.Identity{ID: "o", Role: domain.RoleOperator, Token: "t3"}))
}
