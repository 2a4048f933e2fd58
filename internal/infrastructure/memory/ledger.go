// Package memory implementa los puertos del ledger en memoria. Cada transacción trabaja sobre
// una copia privada del estado que reemplaza al compartido solo al confirmar. Sirve para
// pruebas y para ejecutar la API sin PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	invdomain "github.com/dentalperu/inventario-dental/internal/domain/inventory"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*Ledger)(nil)
	_ repository.ProductRepository  = productRepo{}
	_ repository.MovementRepository = movementRepo{}
	_ repository.SnapshotRepository = snapshotRepo{}
	_ repository.LotRepository      = lotRepo{}
	_ repository.InvoiceRepository  = invoiceRepo{}
)

type snapKey struct {
	productID   string
	month, year int
}

type state struct {
	products   map[string]*entity.Product
	movements  []*entity.Movement
	snapshots  map[snapKey]*entity.MonthlySnapshot
	lots       []*entity.Lot
	invoices   []*entity.Invoice
	invoiceSeq int64
}

func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]*entity.Product, len(s.products)),
		movements:  append([]*entity.Movement(nil), s.movements...),
		snapshots:  make(map[snapKey]*entity.MonthlySnapshot, len(s.snapshots)),
		lots:       append([]*entity.Lot(nil), s.lots...),
		invoices:   append([]*entity.Invoice(nil), s.invoices...),
		invoiceSeq: s.invoiceSeq,
	}
	for k, p := range s.products {
		cp := *p
		c.products[k] = &cp
	}
	for k, v := range s.snapshots {
		cp := *v
		c.snapshots[k] = &cp
	}
	return c
}

// Ledger almacén en memoria. Todas las operaciones son seguras para uso concurrente.
// Las transacciones se serializan y las escrituras fuera de transacción esperan a que
// termine la que esté abierta.
type Ledger struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	st    *state
	fails map[string]error
}

// view liga los repositorios al estado compartido (tx == nil) o a la copia de una transacción.
type view struct {
	l  *Ledger
	tx *state
}

// read bloquea el ledger y devuelve el estado visible para la vista.
func (v view) read() (*state, func()) {
	v.l.mu.Lock()
	if v.tx != nil {
		return v.tx, v.l.mu.Unlock
	}
	return v.l.st, v.l.mu.Unlock
}

// write igual que read; fuera de transacción además toma txMu para que ningún commit la pise.
func (v view) write() (*state, func()) {
	if v.tx != nil {
		v.l.mu.Lock()
		return v.tx, v.l.mu.Unlock
	}
	v.l.txMu.Lock()
	v.l.mu.Lock()
	return v.l.st, func() {
		v.l.mu.Unlock()
		v.l.txMu.Unlock()
	}
}

func (l *Ledger) root() view { return view{l: l} }

// NewLedger crea un ledger vacío.
func NewLedger() *Ledger {
	return &Ledger{
		st: &state{
			products:  map[string]*entity.Product{},
			snapshots: map[snapKey]*entity.MonthlySnapshot{},
		},
		fails: map[string]error{},
	}
}

// FailOn hace que la operación op (ej. "movements.Create") devuelva err. nil la restablece.
func (l *Ledger) FailOn(op string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		delete(l.fails, op)
		return
	}
	l.fails[op] = err
}

func (l *Ledger) fail(op string) error {
	if err, ok := l.fails[op]; ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Movements, Snapshots, Lots e Invoices exponen los repositorios del ledger.
func (l *Ledger) Movements() repository.MovementRepository { return movementRepo{l.root()} }
func (l *Ledger) Snapshots() repository.SnapshotRepository { return snapshotRepo{l.root()} }
func (l *Ledger) Lots() repository.LotRepository           { return lotRepo{l.root()} }
func (l *Ledger) Invoices() repository.InvoiceRepository   { return invoiceRepo{l.root()} }

// Run ejecuta fn como transacción: los cambios solo se publican si fn no falla.
func (l *Ledger) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return l.inTx(func(v view) error { return fn(movementRepo{v}, productRepo{v}) })
}

// RunBilling igual que Run, con el repositorio de facturas.
func (l *Ledger) RunBilling(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return l.inTx(func(v view) error { return fn(movementRepo{v}, productRepo{v}, invoiceRepo{v}) })
}

func (l *Ledger) inTx(fn func(v view) error) error {
	l.txMu.Lock()
	defer l.txMu.Unlock()

	l.mu.Lock()
	if err := l.fail("tx.Begin"); err != nil {
		l.mu.Unlock()
		return err
	}
	work := l.st.clone()
	l.mu.Unlock()

	if err := fn(view{l: l, tx: work}); err != nil {
		return err
	}

	l.mu.Lock()
	l.st = work
	l.mu.Unlock()
	return nil
}

// ── productos ────────────────────────────────────────────────────────────────

type productRepo struct{ v view }

// El Ledger expone directamente el repositorio de productos sobre el estado compartido.
func (l *Ledger) Create(ctx context.Context, p *entity.Product) error {
	return productRepo{l.root()}.Create(ctx, p)
}

func (l *Ledger) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return productRepo{l.root()}.GetByID(ctx, id)
}

func (l *Ledger) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return productRepo{l.root()}.GetForUpdate(ctx, id)
}

func (l *Ledger) ListActive(ctx context.Context) ([]*entity.Product, error) {
	return productRepo{l.root()}.ListActive(ctx)
}

func (l *Ledger) ListBelowMinimum(ctx context.Context) ([]*entity.Product, error) {
	return productRepo{l.root()}.ListBelowMinimum(ctx)
}

func (l *Ledger) AdjustStock(ctx context.Context, id string, delta int64) (int64, error) {
	return productRepo{l.root()}.AdjustStock(ctx, id, delta)
}

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	st, unlock := r.v.write()
	defer unlock()
	if err := r.v.l.fail("products.Create"); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	for _, existing := range st.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	st.products[p.ID] = &cp
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	st, unlock := r.v.read()
	defer unlock()
	if err := r.v.l.fail("products.GetByID"); err != nil {
		return nil, err
	}
	p, ok := st.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r productRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	st, unlock := r.v.read()
	defer unlock()
	if err := r.v.l.fail("products.ListActive"); err != nil {
		return nil, err
	}
	return sortedProducts(st, func(p *entity.Product) bool { return p.Active }), nil
}

func (r productRepo) ListBelowMinimum(_ context.Context) ([]*entity.Product, error) {
	st, unlock := r.v.read()
	defer unlock()
	if err := r.v.l.fail("products.ListBelowMinimum"); err != nil {
		return nil, err
	}
	return sortedProducts(st, func(p *entity.Product) bool { return p.Active && p.BelowMinimum() }), nil
}

func (r productRepo) AdjustStock(_ context.Context, id string, delta int64) (int64, error) {
	st, unlock := r.v.write()
	defer unlock()
	if err := r.v.l.fail("products.AdjustStock"); err != nil {
		return 0, err
	}
	p, ok := st.products[id]
	if !ok {
		return 0, nil
	}
	p.Stock += delta
	return 1, nil
}

func sortedProducts(st *state, keep func(*entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range st.products {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ── movimientos ──────────────────────────────────────────────────────────────

type movementRepo struct{ v view }

func (r movementRepo) Create(_ context.Context, m *entity.Movement) error {
	st, unlock := r.v.write()
	defer unlock()
	if err := r.v.l.fail("movements.Create"); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	st.movements = append(st.movements, &cp)
	return nil
}

func (r movementRepo) ListByPeriod(_ context.Context, productID string, month, year int) ([]*entity.Movement, error) {
	st, unlock := r.v.read()
	defer unlock()
	if err := r.v.l.fail("movements.ListByPeriod"); err != nil {
		return nil, err
	}
	want := entity.Period{Month: month, Year: year}
	var out []*entity.Movement
	for _, m := range st.movements {
		if m.ProductID == productID && entity.PeriodOf(m.OccurredAt) == want {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r movementRepo) SumQuantities(_ context.Context, productID string) (int64, int64, error) {
	st, unlock := r.v.read()
	defer unlock()
	if err := r.v.l.fail("movements.SumQuantities"); err != nil {
		return 0, 0, err
	}
	var in, out int64
	for _, m := range st.movements {
		if m.ProductID != productID {
			continue
		}
		if m.Kind.IsInflow() {
			in += m.Quantity
		} else {
			out += m.Quantity
		}
	}
	return in, out, nil
}

func (r movementRepo) TotalsByMonth(_ context.Context, from, to time.Time) ([]repository.MovementTotal, error) {
	st, unlock := r.v.read()
	defer unlock()
	if err := r.v.l.fail("movements.TotalsByMonth"); err != nil {
		return nil, err
	}
	type key struct {
		p entity.Period
		k entity.MovementKind
	}
	acc := map[key]*repository.MovementTotal{}
	for _, m := range st.movements {
		if m.OccurredAt.Before(from) || !m.OccurredAt.Before(to) {
			continue
		}
		k := key{entity.PeriodOf(m.OccurredAt), m.Kind}
		t, ok := acc[k]
		if !ok {
			t = &repository.MovementTotal{Period: k.p, Kind: k.k, Total: decimal.Zero}
			acc[k] = t
		}
		t.Quantity += m.Quantity
		t.Total = t.Total.Add(m.TotalPrice)
	}
	out := make([]repository.MovementTotal, 0, len(acc))
	for _, t := range acc {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Period.Year != b.Period.Year {
			return a.Period.Year < b.Period.Year
		}
		if a.Period.Month != b.Period.Month {
			return a.Period.Month < b.Period.Month
		}
		return a.Kind < b.Kind
	})
	return out, nil
}

// ── snapshots ────────────────────────────────────────────────────────────────

type snapshotRepo struct{ v view }

func (r snapshotRepo) Get(_ context.Context, productID string, month, year int) (*entity.MonthlySnapshot, error) {
	st, unlock := r.v.read()
	defer unlock()
	if err := r.v.l.fail("snapshots.Get"); err != nil {
		return nil, err
	}
	s, ok := st.snapshots[snapKey{productID, month, year}]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r snapshotRepo) Upsert(_ context.Context, s *entity.MonthlySnapshot) error {
	st, unlock := r.v.write()
	defer unlock()
	if err := r.v.l.fail("snapshots.Upsert"); err != nil {
		return err
	}
	cp := *s
	st.snapshots[snapKey{s.ProductID, s.Month, s.Year}] = &cp
	return nil
}

// ── lotes ────────────────────────────────────────────────────────────────────

type lotRepo struct{ v view }

func (r lotRepo) Create(_ context.Context, lot *entity.Lot) error {
	st, unlock := r.v.write()
	defer unlock()
	if err := r.v.l.fail("lots.Create"); err != nil {
		return err
	}
	if _, ok := st.products[lot.ProductID]; !ok {
		return fmt.Errorf("lote: producto %s inexistente", lot.ProductID)
	}
	for _, existing := range st.lots {
		if existing.ProductID == lot.ProductID && existing.LotNumber == lot.LotNumber {
			return domain.ErrDuplicate
		}
	}
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	cp := *lot
	st.lots = append(st.lots, &cp)
	return nil
}

func (r lotRepo) ListExpiringBetween(_ context.Context, from *time.Time, to time.Time) ([]repository.LotWithProduct, error) {
	st, unlock := r.v.read()
	defer unlock()
	if err := r.v.l.fail("lots.ListExpiringBetween"); err != nil {
		return nil, err
	}
	var out []repository.LotWithProduct
	for _, lot := range st.lots {
		p, ok := st.products[lot.ProductID]
		if !ok || !p.Active {
			continue
		}
		if from != nil && invdomain.DaysBetween(*from, lot.ExpiryDate) < 0 {
			continue
		}
		if invdomain.DaysBetween(lot.ExpiryDate, to) < 0 {
			continue
		}
		out = append(out, repository.LotWithProduct{Lot: *lot, ProductName: p.Name})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(out[j].ExpiryDate) {
			return out[i].ExpiryDate.Before(out[j].ExpiryDate)
		}
		return out[i].LotNumber < out[j].LotNumber
	})
	return out, nil
}

// ── facturas ─────────────────────────────────────────────────────────────────

type invoiceRepo struct{ v view }

func (r invoiceRepo) NextNumber(_ context.Context) (int64, error) {
	st, unlock := r.v.write()
	defer unlock()
	if err := r.v.l.fail("invoices.NextNumber"); err != nil {
		return 0, err
	}
	st.invoiceSeq++
	return st.invoiceSeq, nil
}

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	st, unlock := r.v.write()
	defer unlock()
	if err := r.v.l.fail("invoices.Create"); err != nil {
		return err
	}
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	cp := *inv
	cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	st.invoices = append(st.invoices, &cp)
	return nil
}

// MovementCount e InvoiceCount ayudan a verificar efectos en pruebas.
func (l *Ledger) MovementCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.st.movements)
}

func (l *Ledger) InvoiceCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.st.invoices)
}
