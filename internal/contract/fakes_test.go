package contract

import (
	"time"

	"github.com/primelots/api-realty/internal/client"
	"github.com/primelots/api-realty/internal/commission"
	"github.com/primelots/api-realty/internal/dbtest"
	"github.com/primelots/api-realty/internal/lot"
	"github.com/primelots/api-realty/internal/notification"
	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/reservation"
	"github.com/primelots/api-realty/internal/timeutil"
	"gorm.io/gorm"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timeutil.Manila)
}

type fakeContractRepo struct {
	rows   map[uint]Contract
	nextID uint

	penaltyWrites int
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{rows: map[uint]Contract{}, nextID: 1}
}

func (r *fakeContractRepo) add(c Contract) uint {
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.rows[c.ID] = c
	return c.ID
}

func (r *fakeContractRepo) Create(_ *gorm.DB, c *Contract) error {
	c.ID = r.add(*c)
	return nil
}

func (r *fakeContractRepo) FindByID(_ *gorm.DB, id uint) (*Contract, error) {
	c, ok := r.rows[id]
	if !ok || c.Status == StatusDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeContractRepo) List(_ *gorm.DB, status string) ([]Contract, error) {
	var list []Contract
	for _, c := range r.rows {
		if c.Status == StatusDeleted {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

func (r *fakeContractRepo) ListOngoing(db *gorm.DB) ([]Contract, error) {
	return r.List(db, StatusOnGoing)
}

func (r *fakeContractRepo) Update(_ *gorm.DB, c *Contract) error {
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeContractRepo) UpdatePenalty(_ *gorm.DB, id uint, amount float64, count int) error {
	c := r.rows[id]
	c.PenaltyAmount = amount
	c.PenaltyCount = count
	r.rows[id] = c
	r.penaltyWrites++
	return nil
}

type fakeReservationRepo struct {
	rows map[uint]reservation.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{rows: map[uint]reservation.Reservation{}}
}

func (r *fakeReservationRepo) Create(_ *gorm.DB, res *reservation.Reservation) error {
	if res.ID == 0 {
		res.ID = uint(len(r.rows) + 1)
	}
	r.rows[res.ID] = *res
	return nil
}

func (r *fakeReservationRepo) FindByID(_ *gorm.DB, id uint) (*reservation.Reservation, error) {
	res, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &res, nil
}

func (r *fakeReservationRepo) FindHeldByLot(_ *gorm.DB, lotID uint) (*reservation.Reservation, error) {
	for _, res := range r.rows {
		if res.LotID == lotID && (res.Status == reservation.StatusActive || res.Status == reservation.StatusDone) {
			return &res, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReservationRepo) FindActiveByClientAndLot(_ *gorm.DB, clientID, lotID uint) (*reservation.Reservation, error) {
	for _, res := range r.rows {
		if res.ClientID == clientID && res.LotID == lotID && res.Status == reservation.StatusActive {
			return &res, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReservationRepo) ListActive(_ *gorm.DB) ([]reservation.Reservation, error) {
	var list []reservation.Reservation
	for _, res := range r.rows {
		if res.Status == reservation.StatusActive {
			list = append(list, res)
		}
	}
	return list, nil
}

func (r *fakeReservationRepo) List(_ *gorm.DB) ([]reservation.Reservation, error) {
	var list []reservation.Reservation
	for _, res := range r.rows {
		list = append(list, res)
	}
	return list, nil
}

func (r *fakeReservationRepo) UpdateStatus(_ *gorm.DB, id uint, status string) error {
	res, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	res.Status = status
	r.rows[id] = res
	return nil
}

type fakeLotRepo struct {
	rows map[uint]lot.Lot
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{rows: map[uint]lot.Lot{}}
}

func (r *fakeLotRepo) Create(_ *gorm.DB, l *lot.Lot) error {
	if l.ID == 0 {
		l.ID = uint(len(r.rows) + 1)
	}
	r.rows[l.ID] = *l
	return nil
}

func (r *fakeLotRepo) FindByID(_ *gorm.DB, id uint) (*lot.Lot, error) {
	l, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *fakeLotRepo) List(_ *gorm.DB, status string) ([]lot.Lot, error) {
	var list []lot.Lot
	for _, l := range r.rows {
		if status == "" || l.Status == status {
			list = append(list, l)
		}
	}
	return list, nil
}

func (r *fakeLotRepo) Update(_ *gorm.DB, l *lot.Lot) error {
	r.rows[l.ID] = *l
	return nil
}

func (r *fakeLotRepo) UpdateStatus(_ *gorm.DB, id uint, status string) error {
	l, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.Status = status
	r.rows[id] = l
	return nil
}

type fakePaymentRepo struct {
	rows    []payment.Payment
	nextID  uint
	listErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1}
}

func (r *fakePaymentRepo) Create(_ *gorm.DB, p *payment.Payment) error {
	p.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, *p)
	return nil
}

func (r *fakePaymentRepo) FindByID(_ *gorm.DB, id uint) (*payment.Payment, error) {
	for _, p := range r.rows {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) ListByContract(_ *gorm.DB, contractID uint) ([]payment.Payment, error) {
	var list []payment.Payment
	for _, p := range r.rows {
		if p.ContractID != nil && *p.ContractID == contractID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (r *fakePaymentRepo) ListByReservation(_ *gorm.DB, reservationID uint) ([]payment.Payment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var list []payment.Payment
	for _, p := range r.rows {
		if p.ReservationID != nil && *p.ReservationID == reservationID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (r *fakePaymentRepo) ListByCommission(_ *gorm.DB, commissionID uint) ([]payment.Payment, error) {
	var list []payment.Payment
	for _, p := range r.rows {
		if p.AgentCommissionID != nil && *p.AgentCommissionID == commissionID {
			list = append(list, p)
		}
	}
	return list, nil
}

type fakeCommissionRepo struct {
	rows   map[uint]commission.AgentCommission
	nextID uint
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{rows: map[uint]commission.AgentCommission{}, nextID: 1}
}

func (r *fakeCommissionRepo) Create(_ *gorm.DB, c *commission.AgentCommission) error {
	c.ID = r.nextID
	r.nextID++
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeCommissionRepo) FindByID(_ *gorm.DB, id uint) (*commission.AgentCommission, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCommissionRepo) FindByContract(_ *gorm.DB, contractID uint) (*commission.AgentCommission, error) {
	for _, c := range r.rows {
		if c.ContractID == contractID {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommissionRepo) ListByAgent(_ *gorm.DB, agentID uint) ([]commission.AgentCommission, error) {
	var list []commission.AgentCommission
	for _, c := range r.rows {
		if c.AgentID == agentID {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *fakeCommissionRepo) Update(_ *gorm.DB, c *commission.AgentCommission) error {
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeCommissionRepo) UpdateStatus(_ *gorm.DB, id uint, status string) error {
	c, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = status
	r.rows[id] = c
	return nil
}

type fakeClientRepo struct {
	rows map[uint]client.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{rows: map[uint]client.Client{}}
}

func (r *fakeClientRepo) Create(_ *gorm.DB, c *client.Client) error {
	if c.ID == 0 {
		c.ID = uint(len(r.rows) + 1)
	}
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeClientRepo) FindByID(_ *gorm.DB, id uint) (*client.Client, error) {
	c, ok := r.rows[id]
	if !ok || c.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeClientRepo) List(_ *gorm.DB) ([]client.Client, error) {
	var list []client.Client
	for _, c := range r.rows {
		if !c.Deleted {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *fakeClientRepo) Update(_ *gorm.DB, c *client.Client) error {
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeClientRepo) SoftDelete(_ *gorm.DB, id uint) error {
	c, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Deleted = true
	r.rows[id] = c
	return nil
}

func clientFixture() client.Client {
	return client.Client{
		ID:        1,
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Email:     "juan@example.com",
	}
}

type recordingSender struct {
	receipts  []notification.Receipt
	reminders []string
}

func (s *recordingSender) SendReceipt(r notification.Receipt) error {
	s.receipts = append(s.receipts, r)
	return nil
}

func (s *recordingSender) SendPaymentReminder(email, _ string, _ time.Time, _ float64) error {
	s.reminders = append(s.reminders, email)
	return nil
}

func (s *recordingSender) SendReservationForfeited(string, string, string) error { return nil }

type testEnv struct {
	svc          *Service
	contracts    *fakeContractRepo
	reservations *fakeReservationRepo
	lots         *fakeLotRepo
	payments     *fakePaymentRepo
	commissions  *fakeCommissionRepo
	clients      *fakeClientRepo
	notifier     *recordingSender
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		contracts:    newFakeContractRepo(),
		reservations: newFakeReservationRepo(),
		lots:         newFakeLotRepo(),
		payments:     newFakePaymentRepo(),
		commissions:  newFakeCommissionRepo(),
		clients:      newFakeClientRepo(),
		notifier:     &recordingSender{},
	}
	env.svc = &Service{
		DB:           dbtest.Open(),
		Repo:         env.contracts,
		Reservations: env.reservations,
		Lots:         env.lots,
		Payments:     env.payments,
		Commissions:  env.commissions,
		Clients:      env.clients,
		Notifier:     env.notifier,
		Now:          func() time.Time { return now },
	}
	return env
}
