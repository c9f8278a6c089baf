package repository

import (
	"context"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"avicena/internal/domain"
)

// DB обёртка над подключением gorm к файлу SQLite
type DB struct {
	gdb *gorm.DB
}

// Open открывает файл базы и накатывает схему
func Open(path string) (*DB, error) {
	gdb, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(
		&domain.Drug{},
		&domain.Supplier{},
		&domain.Order{},
		&domain.OrderLine{},
		&domain.User{},
	).Error; err != nil {
		gdb.Close()
		return nil, err
	}
	return &DB{gdb: gdb}, nil
}

func (d *DB) Close() error { return d.gdb.Close() }

// транзакция прокидывается через контекст, как и в in-memory реализации
type gormTxKey struct{}

func (d *DB) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(gormTxKey{}).(*gorm.DB); ok {
		return tx
	}
	return d.gdb
}

// GormTx транзакции поверх gorm
type GormTx struct{ db *DB }

func NewGormTx(db *DB) *GormTx { return &GormTx{db: db} }

var _ TxManager = (*GormTx)(nil)

func (t *GormTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := t.db.gdb.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	// паника из fn не должна оставить открытую транзакцию
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	ctx = context.WithValue(ctx, gormTxKey{}, tx)
	if err := fn(ctx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// GormDrugs репозиторий препаратов поверх SQLite
type GormDrugs struct{ db *DB }

func NewGormDrugs(db *DB) *GormDrugs { return &GormDrugs{db: db} }

var _ DrugRepository = (*GormDrugs)(nil)

func (r *GormDrugs) Create(ctx context.Context, d *domain.Drug) error {
	return r.db.conn(ctx).Create(d).Error
}

func (r *GormDrugs) GetByID(ctx context.Context, id int64) (*domain.Drug, error) {
	var d domain.Drug
	if err := r.db.conn(ctx).First(&d, id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Update полностью заменяет изменяемые поля; отсутствующий id — тихий no-op
func (r *GormDrugs) Update(ctx context.Context, d *domain.Drug) error {
	// map, а не структура: нулевые значения (quantity = 0) тоже должны записываться
	return r.db.conn(ctx).Model(&domain.Drug{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
		"name":               d.Name,
		"batch_number":       d.BatchNumber,
		"expiry_date":        d.ExpiryDate,
		"manufacturer":       d.Manufacturer,
		"quantity":           d.Quantity,
		"storage_conditions": d.StorageConditions,
	}).Error
}

func (r *GormDrugs) Delete(ctx context.Context, id int64) error {
	return r.db.conn(ctx).Where("id = ?", id).Delete(&domain.Drug{}).Error
}

func (r *GormDrugs) List(ctx context.Context, f NameFilter) ([]domain.Drug, error) {
	q := r.db.conn(ctx)
	if f.NameSubstring != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(f.NameSubstring))
	}
	var out []domain.Drug
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// AdjustQuantity один UPDATE с арифметикой на стороне базы;
// итог может уйти в минус — достаточность остатка проверяет вызывающий
func (r *GormDrugs) AdjustQuantity(ctx context.Context, id int64, delta int64) error {
	return r.db.conn(ctx).Model(&domain.Drug{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *GormDrugs) ListLowStock(ctx context.Context, threshold int64) ([]domain.Drug, error) {
	var out []domain.Drug
	if err := r.db.conn(ctx).Where("quantity < ?", threshold).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormDrugs) ListExpiringBefore(ctx context.Context, cutoff string) ([]domain.Drug, error) {
	var out []domain.Drug
	if err := r.db.conn(ctx).Where("expiry_date < ?", cutoff).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GormSuppliers репозиторий поставщиков поверх SQLite
type GormSuppliers struct{ db *DB }

func NewGormSuppliers(db *DB) *GormSuppliers { return &GormSuppliers{db: db} }

var _ SupplierRepository = (*GormSuppliers)(nil)

func (r *GormSuppliers) Create(ctx context.Context, s *domain.Supplier) error {
	return r.db.conn(ctx).Create(s).Error
}

func (r *GormSuppliers) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := r.db.conn(ctx).First(&s, id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormSuppliers) Update(ctx context.Context, s *domain.Supplier) error {
	return r.db.conn(ctx).Model(&domain.Supplier{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":         s.Name,
		"contact_info": s.ContactInfo,
		"address":      s.Address,
	}).Error
}

func (r *GormSuppliers) Delete(ctx context.Context, id int64) error {
	// никаких проверок ссылающихся заказов: исторические заказы остаются висеть
	return r.db.conn(ctx).Where("id = ?", id).Delete(&domain.Supplier{}).Error
}

func (r *GormSuppliers) List(ctx context.Context, f NameFilter) ([]domain.Supplier, error) {
	q := r.db.conn(ctx)
	if f.NameSubstring != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(f.NameSubstring))
	}
	var out []domain.Supplier
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GormOrders репозиторий заказов поверх SQLite
type GormOrders struct{ db *DB }

func NewGormOrders(db *DB) *GormOrders { return &GormOrders{db: db} }

var _ OrderRepository = (*GormOrders)(nil)

func (r *GormOrders) Create(ctx context.Context, o *domain.Order) error {
	conn := r.db.conn(ctx)
	if err := conn.Create(o).Error; err != nil {
		return err
	}
	for i := range o.Lines {
		o.Lines[i].OrderID = o.ID
		if err := conn.Create(&o.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	conn := r.db.conn(ctx)
	var o domain.Order
	if err := conn.First(&o, id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := conn.Where("order_id = ?", id).Order("id").Find(&o.Lines).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormOrders) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	res := r.db.conn(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete убирает заказ и его строки; каскад обеспечивает движок, а не схема
func (r *GormOrders) Delete(ctx context.Context, id int64) error {
	conn := r.db.conn(ctx)
	res := conn.Where("id = ?", id).Delete(&domain.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return conn.Where("order_id = ?", id).Delete(&domain.OrderLine{}).Error
}

const orderSummarySelect = "orders.id AS order_id, orders.order_date, suppliers.name AS supplier_name, orders.status"

func (r *GormOrders) List(ctx context.Context) ([]domain.OrderSummary, error) {
	var out []domain.OrderSummary
	err := r.db.conn(ctx).Table("orders").
		Select(orderSummarySelect).
		Joins("JOIN suppliers ON suppliers.id = orders.supplier_id").
		Order("orders.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormOrders) Search(ctx context.Context, term string) ([]domain.OrderSummary, error) {
	pattern := likePattern(term)
	var out []domain.OrderSummary
	err := r.db.conn(ctx).Table("orders").
		Select(orderSummarySelect).
		Joins("JOIN suppliers ON suppliers.id = orders.supplier_id").
		Where("CAST(orders.id AS TEXT) LIKE ? OR LOWER(suppliers.name) LIKE ?", pattern, pattern).
		Order("orders.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GormUsers репозиторий учётных записей поверх SQLite
type GormUsers struct{ db *DB }

func NewGormUsers(db *DB) *GormUsers { return &GormUsers{db: db} }

var _ UserRepository = (*GormUsers)(nil)

func (r *GormUsers) Create(ctx context.Context, u *domain.User) error {
	conn := r.db.conn(ctx)
	var existing domain.User
	err := conn.Where("username = ?", u.Username).First(&existing).Error
	if err == nil {
		return ErrDuplicate
	}
	if !gorm.IsRecordNotFoundError(err) {
		return err
	}
	// под гонкой двух регистраций precheck пропускает обе; последнее слово
	// за unique_index, его отказ тоже превращаем в ErrDuplicate
	if err := conn.Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := r.db.conn(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// isUniqueViolation распознаёт отказ уникального индекса SQLite;
// драйвер не экспортирует типизированной ошибки для gorm v1
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
