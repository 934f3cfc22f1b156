package booking

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farwill/travel-booking/internal/model"
	"github.com/farwill/travel-booking/internal/payment"
	"github.com/farwill/travel-booking/internal/queue"
	"github.com/farwill/travel-booking/internal/repository"
)

type fakeVerifier struct {
	result payment.VerifyResult
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(ctx context.Context, reference string) (payment.VerifyResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeUsers struct {
	users map[uint64]model.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

// fakeStore enforces payment reference uniqueness like the real table.
type fakeStore struct {
	mu     sync.Mutex
	byRef  map[string]model.Reservation
	nextID uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{byRef: map[string]model.Reservation{}}
}

func (f *fakeStore) Create(ctx context.Context, res *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byRef[res.PaymentRef]; ok {
		return repository.ErrDuplicateRef
	}
	f.nextID++
	res.ID = f.nextID
	f.byRef[res.PaymentRef] = *res
	return nil
}

func (f *fakeStore) ExistsByRef(ctx context.Context, paymentRef string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byRef[paymentRef]
	return ok, nil
}

type fakeEvents struct {
	published []queue.EmailEvent
	err       error
}

func (f *fakeEvents) Publish(ctx context.Context, event queue.EmailEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

func verifiedGateway() *fakeVerifier {
	return &fakeVerifier{result: payment.VerifyResult{Verified: true, Amount: 150000, RawStatus: "success"}}
}

func directoryWith(u model.User) *fakeUsers {
	return &fakeUsers{users: map[uint64]model.User{u.ID: u}}
}

var testPlan = model.PlanSnapshot{Category: "4 star", Nights: 6, People: 2, Price: 75000, Total: 150000}

func TestReconcileSuccess(t *testing.T) {
	store := newFakeStore()
	events := &fakeEvents{}
	user := model.User{ID: 7, FullName: "Ada Obi", Email: "ada@example.com", Role: model.RoleUser}
	rec := NewReconciler(verifiedGateway(), directoryWith(user), store, events)

	res, err := rec.Reconcile(context.Background(), "PSK_123", 7, testPlan)
	require.NoError(t, err)

	assert.Equal(t, "PSK_123", res.PaymentRef)
	assert.Equal(t, model.ReservationPaid, res.Status)
	assert.Equal(t, uint64(7), res.User.ID)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, testPlan, res.Plan)
	assert.NotZero(t, res.ID)

	require.Len(t, events.published, 1)
	assert.Equal(t, queue.KindReservationPaid, events.published[0].Kind)
	assert.Equal(t, "ada@example.com", events.published[0].To)
	assert.Equal(t, "4 star, 6 nights, 2 people", events.published[0].PlanLabel)
}

func TestReconcileSameReferenceTwice(t *testing.T) {
	store := newFakeStore()
	user := model.User{ID: 7, Email: "ada@example.com"}
	rec := NewReconciler(verifiedGateway(), directoryWith(user), store, nil)

	_, err := rec.Reconcile(context.Background(), "PSK_123", 7, testPlan)
	require.NoError(t, err)

	_, err = rec.Reconcile(context.Background(), "PSK_123", 7, testPlan)
	assert.ErrorIs(t, err, ErrDuplicateReservation)
	assert.Len(t, store.byRef, 1)
}

// blindStore reports the ref as free from the pre-check but already holds
// it, mimicking a concurrent submit landing between check and insert.
type blindStore struct{ *fakeStore }

func (b *blindStore) ExistsByRef(ctx context.Context, paymentRef string) (bool, error) {
	return false, nil
}

// A second submit that slips past the pre-check still loses at the store's
// unique constraint and surfaces as a duplicate, not a server error.
func TestReconcileInsertRace(t *testing.T) {
	inner := newFakeStore()
	first := model.Reservation{User: model.UserSnapshot{ID: 9}, PaymentRef: "PSK_RACE", Status: model.ReservationPaid}
	require.NoError(t, inner.Create(context.Background(), &first))

	user := model.User{ID: 7, Email: "ada@example.com"}
	rec := NewReconciler(verifiedGateway(), directoryWith(user), &blindStore{inner}, nil)

	_, err := rec.Reconcile(context.Background(), "PSK_RACE", 7, testPlan)
	assert.ErrorIs(t, err, ErrDuplicateReservation)
	assert.Len(t, inner.byRef, 1)
}

func TestReconcileNotVerified(t *testing.T) {
	store := newFakeStore()
	gw := &fakeVerifier{result: payment.VerifyResult{Verified: false, RawStatus: "failed"}}
	rec := NewReconciler(gw, directoryWith(model.User{ID: 7}), store, nil)

	_, err := rec.Reconcile(context.Background(), "PSK_123", 7, testPlan)
	assert.ErrorIs(t, err, ErrPaymentNotVerified)
	assert.Empty(t, store.byRef, "nothing may be persisted for an unverified payment")
}

func TestReconcileGatewayUnreachable(t *testing.T) {
	store := newFakeStore()
	gw := &fakeVerifier{err: payment.ErrGatewayUnreachable}
	rec := NewReconciler(gw, directoryWith(model.User{ID: 7}), store, nil)

	_, err := rec.Reconcile(context.Background(), "PSK_123", 7, testPlan)
	assert.ErrorIs(t, err, ErrPaymentNotVerified)
	assert.Empty(t, store.byRef)
}

func TestReconcileUnknownUser(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler(verifiedGateway(), &fakeUsers{users: map[uint64]model.User{}}, store, nil)

	_, err := rec.Reconcile(context.Background(), "PSK_123", 42, testPlan)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, store.byRef)
}

func TestReconcileSnapshotUsesTrustedEmail(t *testing.T) {
	store := newFakeStore()
	user := model.User{ID: 7, Email: "trusted@example.com"}
	rec := NewReconciler(verifiedGateway(), directoryWith(user), store, nil)

	res, err := rec.Reconcile(context.Background(), "PSK_123", 7, testPlan)
	require.NoError(t, err)
	assert.Equal(t, "trusted@example.com", res.User.Email)
}

func TestReconcilePublishFailureDoesNotUnwind(t *testing.T) {
	store := newFakeStore()
	events := &fakeEvents{err: errors.New("broker down")}
	user := model.User{ID: 7, Email: "ada@example.com"}
	rec := NewReconciler(verifiedGateway(), directoryWith(user), store, events)

	res, err := rec.Reconcile(context.Background(), "PSK_123", 7, testPlan)
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Len(t, store.byRef, 1)
}
