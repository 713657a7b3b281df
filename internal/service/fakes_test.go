package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/repository/contract"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeStore is an in-memory stand-in for the database behind the unit of work.
// It interprets the specifications the services use.
type fakeStore struct {
	mu sync.Mutex

	users         map[uuid.UUID]*entity.User
	subscriptions map[uuid.UUID]*entity.Subscription
	customers     map[string]*entity.BillingCustomer
	cancellations map[uuid.UUID]*entity.CancellationRequest
	withdrawals   map[uuid.UUID]*entity.WithdrawalRequest
	orders        map[uuid.UUID]*entity.Order
	prices        map[string]*entity.MetalPrice

	subscriptionInserts int
	commits             int
	orderReads          int

	// onOrderRead runs under the store lock before each order lookup.
	onOrderRead func(reads int)
	// afterSubscriptionList runs after a subscription listing returns its snapshot.
	afterSubscriptionList func()

	failCustomerUpsert     error
	failSubscriptionCreate error
	failUpdateCheckout     error
	failOrderFind          error
	failPriceUpsert        error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         map[uuid.UUID]*entity.User{},
		subscriptions: map[uuid.UUID]*entity.Subscription{},
		customers:     map[string]*entity.BillingCustomer{},
		cancellations: map[uuid.UUID]*entity.CancellationRequest{},
		withdrawals:   map[uuid.UUID]*entity.WithdrawalRequest{},
		orders:        map[uuid.UUID]*entity.Order{},
		prices:        map[string]*entity.MetalPrice{},
	}
}

func (s *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{store: s}
}

func (s *fakeStore) addUser(u entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Id == uuid.Nil {
		u.Id = uuid.New()
	}
	if u.Role == "" {
		u.Role = entity.UserRoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.Id] = &u
	return &u
}

func (s *fakeStore) addSubscription(sub entity.Subscription) *entity.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.Id == uuid.Nil {
		sub.Id = uuid.New()
	}
	if sub.Quantity == 0 {
		sub.Quantity = 1
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	s.subscriptions[sub.Id] = &sub
	return &sub
}

func (s *fakeStore) addCancellation(r entity.CancellationRequest) *entity.CancellationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.cancellations[r.Id] = &r
	return &r
}

func (s *fakeStore) addWithdrawal(r entity.WithdrawalRequest) *entity.WithdrawalRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.withdrawals[r.Id] = &r
	return &r
}

func (s *fakeStore) addOrder(o entity.Order) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.Id == uuid.Nil {
		o.Id = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	s.orders[o.Id] = &o
	return &o
}

func (s *fakeStore) subscription(id uuid.UUID) *entity.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscriptions[id]
	if !ok {
		return nil
	}
	c := *sub
	return &c
}

func (s *fakeStore) setSubscriptionStatus(id uuid.UUID, status lifecycle.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subscriptions[id]; ok {
		sub.Status = status
	}
}

func (s *fakeStore) onlySubscription() *entity.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscriptions {
		c := *sub
		return &c
	}
	return nil
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Begin(ctx context.Context) error { return nil }

func (u *fakeUoW) Commit() error {
	u.store.mu.Lock()
	u.store.commits++
	u.store.mu.Unlock()
	return nil
}

func (u *fakeUoW) Rollback() error { return nil }

func (u *fakeUoW) UserRepository() contract.UserRepository {
	return &fakeUserRepo{u.store}
}

func (u *fakeUoW) SubscriptionRepository() contract.SubscriptionRepository {
	return &fakeSubscriptionRepo{u.store}
}

func (u *fakeUoW) BillingCustomerRepository() contract.BillingCustomerRepository {
	return &fakeBillingRepo{u.store}
}

func (u *fakeUoW) CancellationRequestRepository() contract.CancellationRequestRepository {
	return &fakeCancellationRepo{u.store}
}

func (u *fakeUoW) WithdrawalRequestRepository() contract.WithdrawalRequestRepository {
	return &fakeWithdrawalRepo{u.store}
}

func (u *fakeUoW) OrderRepository() contract.OrderRepository {
	return &fakeOrderRepo{u.store}
}

func (u *fakeUoW) MetalPriceRepository() contract.MetalPriceRepository {
	return &fakePriceRepo{u.store}
}

// selectRows filters, orders and paginates rows the way the gorm specifications would.
func selectRows[T any](rows []T, field func(T, string) interface{}, specs []specification.Specification) []T {
	var (
		order *specification.OrderBy
		page  *specification.Pagination
		out   []T
	)
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			order = &s
		case specification.Pagination:
			page = &s
		}
	}

	for _, row := range rows {
		if matchesAll(func(name string) interface{} { return field(row, name) }, specs) {
			out = append(out, row)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		name := "created_at"
		if order != nil {
			name = order.Field
		}
		a, _ := field(out[i], name).(time.Time)
		b, _ := field(out[j], name).(time.Time)
		if order != nil && order.Desc {
			return a.After(b)
		}
		return a.Before(b)
	})

	if page != nil {
		if page.Offset >= len(out) {
			return nil
		}
		out = out[page.Offset:]
		if page.Limit > 0 && page.Limit < len(out) {
			out = out[:page.Limit]
		}
	}
	return out
}

func matchesAll(get func(string) interface{}, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if norm(get("id")) != s.ID.String() {
				return false
			}
		case specification.ByIDs:
			if !containsUUID(s.IDs, norm(get("id"))) {
				return false
			}
		case specification.FilterBy:
			if norm(get(s.Field)) != norm(s.Value) {
				return false
			}
		case specification.UserOwnedBy:
			if norm(get("user_id")) != s.UserID.String() {
				return false
			}
		case specification.BySubscription:
			if norm(get("subscription_id")) != s.SubscriptionID.String() {
				return false
			}
		case specification.BySubscriptions:
			if !containsUUID(s.SubscriptionIDs, norm(get("subscription_id"))) {
				return false
			}
		case specification.ByIdempotencyKey:
			if norm(get("idempotency_key")) != s.Key {
				return false
			}
		case specification.ByProvider:
			if norm(get("provider")) != s.Provider {
				return false
			}
		case specification.ByEmail:
			if norm(get("email")) != s.Email {
				return false
			}
		case specification.ByRole:
			if norm(get("role")) != s.Role {
				return false
			}
		case specification.StatusIn:
			status := norm(get("status"))
			found := false
			for _, st := range s.Statuses {
				if st == status {
					found = true
				}
			}
			if !found {
				return false
			}
		case specification.CreatedBefore:
			created, _ := get("created_at").(time.Time)
			if !created.Before(s.Time) {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			panic(fmt.Sprintf("fake store does not understand %T", spec))
		}
	}
	return true
}

func containsUUID(ids []uuid.UUID, value string) bool {
	for _, id := range ids {
		if id.String() == value {
			return true
		}
	}
	return false
}

func norm(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case *uuid.UUID:
		if x == nil {
			return ""
		}
		return x.String()
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

type fakeUserRepo struct{ s *fakeStore }

func userField(u *entity.User, name string) interface{} {
	switch name {
	case "id":
		return u.Id
	case "email":
		return u.Email
	case "role":
		return string(u.Role)
	case "created_at":
		return u.CreatedAt
	}
	return nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return errors.New("duplicate key value violates unique constraint \"users_email_key\"")
		}
	}
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	user.CreatedAt = time.Now()
	c := *user
	r.s.users[user.Id] = &c
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *user
	r.s.users[user.Id] = &c
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

func (r *fakeUserRepo) all(specs []specification.Specification) []*entity.User {
	rows := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		c := *u
		rows = append(rows, &c)
	}
	return selectRows(rows, userField, specs)
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.all(specs)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.all(specs), nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.all(specs))), nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.Role = role
	}
	return nil
}

type fakeSubscriptionRepo struct{ s *fakeStore }

func subscriptionField(sub *entity.Subscription, name string) interface{} {
	switch name {
	case "id":
		return sub.Id
	case "user_id":
		return sub.UserId
	case "status":
		return string(sub.Status)
	case "metal":
		return string(sub.Metal)
	case "provider":
		return sub.Provider
	case "idempotency_key":
		return sub.IdempotencyKey
	case "provider_subscription_id":
		return sub.ProviderSubscriptionId
	case "checkout_session_id":
		return sub.CheckoutSessionId
	case "created_at":
		return sub.CreatedAt
	}
	return nil
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failSubscriptionCreate != nil {
		return r.s.failSubscriptionCreate
	}
	if sub.Id == uuid.Nil {
		sub.Id = uuid.New()
	}
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	c := *sub
	r.s.subscriptions[sub.Id] = &c
	r.s.subscriptionInserts++
	return nil
}

func (r *fakeSubscriptionRepo) Update(ctx context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub.UpdatedAt = time.Now()
	c := *sub
	r.s.subscriptions[sub.Id] = &c
	return nil
}

func (r *fakeSubscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.subscriptions, id)
	return nil
}

func (r *fakeSubscriptionRepo) all(specs []specification.Specification) []*entity.Subscription {
	rows := make([]*entity.Subscription, 0, len(r.s.subscriptions))
	for _, sub := range r.s.subscriptions {
		c := *sub
		rows = append(rows, &c)
	}
	return selectRows(rows, subscriptionField, specs)
}

func (r *fakeSubscriptionRepo) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.all(specs)
	for _, sub := range rows {
		delete(r.s.subscriptions, sub.Id)
	}
	return int64(len(rows)), nil
}

func (r *fakeSubscriptionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.all(specs)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeSubscriptionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	r.s.mu.Lock()
	rows := r.all(specs)
	hook := r.s.afterSubscriptionList
	r.s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return rows, nil
}

func (r *fakeSubscriptionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.all(specs))), nil
}

func (r *fakeSubscriptionRepo) UpdateCheckout(ctx context.Context, id uuid.UUID, marker entity.CheckoutMarker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failUpdateCheckout != nil {
		return r.s.failUpdateCheckout
	}
	sub, ok := r.s.subscriptions[id]
	if !ok {
		return nil
	}
	sub.CheckoutState = marker.State
	sub.CheckoutSessionId = marker.SessionId
	sub.CheckoutClientSecret = marker.ClientSecret
	sub.CheckoutRedirectURL = marker.RedirectURL
	return nil
}

func (r *fakeSubscriptionRepo) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to lifecycle.Status) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subscriptions[id]
	if !ok || sub.Status != from {
		return false, nil
	}
	sub.Status = to
	return true, nil
}

func (r *fakeSubscriptionRepo) SumInvestments(ctx context.Context, specs ...specification.Specification) (*contract.InvestmentTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := &contract.InvestmentTotals{}
	for _, sub := range r.all(specs) {
		totals.TotalInvested += sub.AccumulatedValue
		totals.MonthlyInvested += sub.MonthlyCommitment()
	}
	return totals, nil
}

type fakeBillingRepo struct{ s *fakeStore }

func (r *fakeBillingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BillingCustomer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]*entity.BillingCustomer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		cp := *c
		rows = append(rows, &cp)
	}
	rows = selectRows(rows, func(c *entity.BillingCustomer, name string) interface{} {
		switch name {
		case "user_id":
			return c.UserId
		case "provider":
			return c.Provider
		case "created_at":
			return c.CreatedAt
		}
		return nil
	}, specs)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeBillingRepo) Upsert(ctx context.Context, customer *entity.BillingCustomer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCustomerUpsert != nil {
		return r.s.failCustomerUpsert
	}
	c := *customer
	c.UpdatedAt = time.Now()
	r.s.customers[c.UserId.String()+"/"+c.Provider] = &c
	return nil
}

type fakeCancellationRepo struct{ s *fakeStore }

func cancellationField(req *entity.CancellationRequest, name string) interface{} {
	switch name {
	case "id":
		return req.Id
	case "user_id":
		return req.UserId
	case "subscription_id":
		return req.SubscriptionId
	case "status":
		return string(req.Status)
	case "created_at":
		return req.CreatedAt
	}
	return nil
}

func (r *fakeCancellationRepo) Create(ctx context.Context, req *entity.CancellationRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req.Id == uuid.Nil {
		req.Id = uuid.New()
	}
	req.CreatedAt = time.Now()
	c := *req
	r.s.cancellations[req.Id] = &c
	return nil
}

func (r *fakeCancellationRepo) Update(ctx context.Context, req *entity.CancellationRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.cancellations[req.Id]
	if !ok {
		return nil
	}
	stored.Status = req.Status
	stored.ResolutionNotes = req.ResolutionNotes
	stored.ProcessedAt = req.ProcessedAt
	return nil
}

func (r *fakeCancellationRepo) all(specs []specification.Specification) []*entity.CancellationRequest {
	rows := make([]*entity.CancellationRequest, 0, len(r.s.cancellations))
	for _, req := range r.s.cancellations {
		c := *req
		rows = append(rows, &c)
	}
	return selectRows(rows, cancellationField, specs)
}

func (r *fakeCancellationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancellationRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.all(specs)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeCancellationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancellationRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.all(specs), nil
}

type fakeWithdrawalRepo struct{ s *fakeStore }

func withdrawalField(req *entity.WithdrawalRequest, name string) interface{} {
	switch name {
	case "id":
		return req.Id
	case "user_id":
		return req.UserId
	case "subscription_id":
		return req.SubscriptionId
	case "status":
		return string(req.Status)
	case "created_at":
		return req.CreatedAt
	}
	return nil
}

func (r *fakeWithdrawalRepo) Create(ctx context.Context, req *entity.WithdrawalRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req.Id == uuid.Nil {
		req.Id = uuid.New()
	}
	req.CreatedAt = time.Now()
	c := *req
	r.s.withdrawals[req.Id] = &c
	return nil
}

func (r *fakeWithdrawalRepo) Update(ctx context.Context, req *entity.WithdrawalRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.withdrawals[req.Id]
	if !ok {
		return nil
	}
	stored.Status = req.Status
	stored.ResolutionNotes = req.ResolutionNotes
	stored.ProcessedAt = req.ProcessedAt
	return nil
}

func (r *fakeWithdrawalRepo) all(specs []specification.Specification) []*entity.WithdrawalRequest {
	rows := make([]*entity.WithdrawalRequest, 0, len(r.s.withdrawals))
	for _, req := range r.s.withdrawals {
		c := *req
		rows = append(rows, &c)
	}
	return selectRows(rows, withdrawalField, specs)
}

func (r *fakeWithdrawalRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WithdrawalRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.all(specs)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeWithdrawalRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WithdrawalRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.all(specs), nil
}

type fakeOrderRepo struct{ s *fakeStore }

func orderField(o *entity.Order, name string) interface{} {
	switch name {
	case "id":
		return o.Id
	case "user_id":
		return o.UserId
	case "subscription_id":
		return o.SubscriptionId
	case "status":
		return string(o.Status)
	case "payment_status":
		return o.PaymentStatus
	case "checkout_session_id":
		return o.CheckoutSessionId
	case "created_at":
		return o.CreatedAt
	}
	return nil
}

func (r *fakeOrderRepo) all(specs []specification.Specification) []*entity.Order {
	rows := make([]*entity.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		c := *o
		rows = append(rows, &c)
	}
	return selectRows(rows, orderField, specs)
}

func (r *fakeOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failOrderFind != nil {
		return nil, r.s.failOrderFind
	}
	r.s.orderReads++
	if r.s.onOrderRead != nil {
		r.s.onOrderRead(r.s.orderReads)
	}
	rows := r.all(specs)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failOrderFind != nil {
		return nil, r.s.failOrderFind
	}
	return r.all(specs), nil
}

type fakePriceRepo struct{ s *fakeStore }

func (r *fakePriceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MetalPrice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]*entity.MetalPrice, 0, len(r.s.prices))
	for _, p := range r.s.prices {
		c := *p
		rows = append(rows, &c)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].MetalSymbol < rows[j].MetalSymbol })
	return rows, nil
}

func (r *fakePriceRepo) UpsertAll(ctx context.Context, prices []*entity.MetalPrice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failPriceUpsert != nil {
		return r.s.failPriceUpsert
	}
	for _, p := range prices {
		c := *p
		r.s.prices[string(p.MetalSymbol)] = &c
	}
	return nil
}

// mockGateway is a testify mock of payment.Gateway.
type mockGateway struct {
	mock.Mock
	name string
	mode payment.Mode
}

func newMockGateway(name string, mode payment.Mode) *mockGateway {
	return &mockGateway{name: name, mode: mode}
}

func (m *mockGateway) Name() string       { return m.name }
func (m *mockGateway) Mode() payment.Mode { return m.mode }

func (m *mockGateway) CreateCustomer(ctx context.Context, req payment.CustomerRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*payment.Session)
	return session, args.Error(1)
}

// recordingPublisher captures domain events emitted by the services.
type recordingPublisher struct {
	mu    sync.Mutex
	names []string
}

func (p *recordingPublisher) record(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.names = append(p.names, name)
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.names...)
}

func (p *recordingPublisher) PublishPendingCreated(context.Context, uuid.UUID, uuid.UUID, string, string) {
	p.record("pending_created")
}

func (p *recordingPublisher) PublishCancellationRequested(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, string) {
	p.record("cancellation_requested")
}

func (p *recordingPublisher) PublishWithdrawalRequested(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, float64, string, float64) {
	p.record("withdrawal_requested")
}

func (p *recordingPublisher) PublishRequestStatusUpdated(_ context.Context, kind string, _ uuid.UUID, _ uuid.UUID, _ string, to string) {
	p.record(kind + ":" + to)
}

func (p *recordingPublisher) PublishInvestmentChanged(context.Context, uuid.UUID, uuid.UUID, float64, float64, *time.Time) {
	p.record("investment_changed")
}

func (p *recordingPublisher) PublishPendingExpired(context.Context, int, time.Time) {
	p.record("pending_expired")
}
