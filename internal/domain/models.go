package domain

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusReceived OrderStatus = "Received"
)

// Valid проверяет, что статус входит в перечисление
func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusReceived
}

// Drug партия препарата на складе
type Drug struct {
	ID                int64  `json:"drug_id" gorm:"primary_key"`
	Name              string `json:"name" gorm:"not null"`
	BatchNumber       string `json:"batch_number" gorm:"not null"`
	ExpiryDate        string `json:"expiry_date" gorm:"type:date;not null"` // YYYY-MM-DD
	Manufacturer      string `json:"manufacturer" gorm:"not null"`
	Quantity          int64  `json:"quantity" gorm:"not null"`
	StorageConditions string `json:"storage_conditions" gorm:"type:text"`
}

// Supplier поставщик, на него ссылаются заказы
type Supplier struct {
	ID          int64  `json:"supplier_id" gorm:"primary_key"`
	Name        string `json:"name" gorm:"not null"`
	ContactInfo string `json:"contact_info"`
	Address     string `json:"address" gorm:"type:text"`
}

// OrderItem позиция в заявке на размещение заказа
type OrderItem struct {
	DrugID   int64 `json:"drug_id"`
	Quantity int64 `json:"quantity"`
}

// OrderLine строка заказа; живёт и умирает вместе со своим заказом
type OrderLine struct {
	ID       int64 `json:"order_line_id" gorm:"primary_key"`
	OrderID  int64 `json:"order_id" gorm:"not null;index"`
	DrugID   int64 `json:"drug_id" gorm:"not null;index"`
	Quantity int64 `json:"quantity" gorm:"not null"`
}

// Order заказ у поставщика; строки сохраняются отдельными записями
type Order struct {
	ID         int64       `json:"order_id" gorm:"primary_key"`
	OrderDate  string      `json:"order_date" gorm:"type:date;not null"` // YYYY-MM-DD
	SupplierID int64       `json:"supplier_id" gorm:"not null;index"`
	Status     OrderStatus `json:"status" gorm:"not null"`
	Lines      []OrderLine `json:"lines,omitempty" gorm:"-"`
}

// OrderSummary строка списка заказов с именем поставщика
type OrderSummary struct {
	OrderID      int64       `json:"order_id"`
	OrderDate    string      `json:"order_date"`
	SupplierName string      `json:"supplier_name"`
	Status       OrderStatus `json:"status"`
}

// User учётная запись для входа
type User struct {
	ID           int64  `json:"user_id" gorm:"primary_key"`
	Username     string `json:"username" gorm:"unique_index;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
}
