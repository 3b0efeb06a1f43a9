package domain

import "time"

const productEntityName = "product"

type Product struct {
	ID        ID
	Name      string
	Quantity  int
	Price     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProduct(name string, quantity int, price float64) *Product {
	now := time.Now()
	return &Product{
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ProductUpdate holds the fields of a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name     *string
	Quantity *int
	Price    *float64
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Quantity == nil && u.Price == nil
}

// ProductFilter is a conjunction of optional clauses. NameContains is a literal,
// case-insensitive substring; the price bounds are inclusive.
type ProductFilter struct {
	NameContains string
	MinPrice     *float64
	MaxPrice     *float64
}

type ProductPage struct {
	TotalProducts int64
	Page          int
	Limit         int
	TotalPages    int64
	Products      []*Product
}

type ProductSnapshot struct {
	ProductID ID      `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type ProductCreatedEvent struct {
	ProductSnapshot
	OccurredAt time.Time `json:"occurredAt"`
}

func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{ProductSnapshot: snapshotOf(p), OccurredAt: time.Now()}
}

func (e *ProductCreatedEvent) GetName() string       { return "product.created" }
func (e *ProductCreatedEvent) GetEntityName() string { return productEntityName }

type ProductUpdatedEvent struct {
	ProductSnapshot
	OccurredAt time.Time `json:"occurredAt"`
}

func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{ProductSnapshot: snapshotOf(p), OccurredAt: time.Now()}
}

func (e *ProductUpdatedEvent) GetName() string       { return "product.updated" }
func (e *ProductUpdatedEvent) GetEntityName() string { return productEntityName }

type ProductDeletedEvent struct {
	ProductIDs   []ID      `json:"productIds"`
	DeletedCount int64     `json:"deletedCount"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func NewProductDeletedEvent(ids []ID, deletedCount int64) *ProductDeletedEvent {
	return &ProductDeletedEvent{ProductIDs: ids, DeletedCount: deletedCount, OccurredAt: time.Now()}
}

func (e *ProductDeletedEvent) GetName() string       { return "product.deleted" }
func (e *ProductDeletedEvent) GetEntityName() string { return productEntityName }

func snapshotOf(p *Product) ProductSnapshot {
	return ProductSnapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Price:     p.Price,
	}
}
